package xl

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage is the interface for writing package parts. Implementations can
// write to ZIP archives or directory structures.
type Storage interface {
	WriteBlob(path string, blob []byte) error
}

// DirStorage writes package parts to a directory structure on disk.
// This is useful for debugging as it allows inspection of generated XML files.
type DirStorage struct {
	Dir string // Root directory path
}

// ZipStorage writes package parts to a ZIP archive, creating a standard
// .xlsx file. Entries are Deflate-compressed and carry a fixed timestamp so
// that identical workbooks produce identical bytes.
type ZipStorage struct {
	z *zip.Writer
}

// zipEpoch is the earliest timestamp the ZIP format can represent.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{
		Dir: dir,
	}
}

// WriteBlob writes a file part to the directory structure.
// Creates any necessary parent directories automatically.
func (ds *DirStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	fn := filepath.Join(ds.Dir, filepath.FromSlash(path))
	err := os.MkdirAll(filepath.Dir(fn), 0777)
	if err != nil {
		return err
	}
	return os.WriteFile(fn, blob, 0666)
}

// NewZipStorage creates a new ZIP-based storage that writes to the given
// writer. archive/zip only ever appends, so out needs no Seek.
func NewZipStorage(out io.Writer) *ZipStorage {
	return &ZipStorage{z: zip.NewWriter(out)}
}

// WriteBlob writes a file part to the ZIP archive.
// Each part becomes a file entry in the ZIP with the specified path.
func (zs *ZipStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	f, err := zs.z.CreateHeader(&zip.FileHeader{
		Name:     path,
		Method:   zip.Deflate,
		Modified: zipEpoch,
	})
	if err != nil {
		return err
	}
	_, err = f.Write(blob)
	return err
}

// Close writes the central directory. Must be called after all writes are
// complete; without it the archive is unreadable.
func (zs *ZipStorage) Close() error {
	return zs.z.Close()
}
