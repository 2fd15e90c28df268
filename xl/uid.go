package xl

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
)

// BlobHash derives a stable uuid from the contents of blob.
func BlobHash(blob []byte) uuid.UUID {
	h := fnv.New128()
	h.Write(blob)
	uid, _ := uuid.FromBytes(h.Sum([]byte{}))
	return uid
}

// chartNamespace scopes the name-based series ids.
var chartNamespace = BlobHash([]byte("xlsx/chart/series"))

// seriesUID returns the braced upper-case id Excel expects in
// c16:uniqueId. It depends only on its arguments, so rewriting the same
// workbook reproduces the same ids.
func seriesUID(sheet string, chartNum, idx int) string {
	u := uuid.NewSHA1(chartNamespace, fmt.Appendf(nil, "%s#%d#%d", sheet, chartNum, idx))
	return "{" + strings.ToUpper(u.String()) + "}"
}
