package xl

import (
	"errors"
	"fmt"
)

// ErrInvalidSheetName is wrapped by every sheet-name validation failure.
var ErrInvalidSheetName = errors.New("invalid sheet name")

var errNoStreamPath = errors.New("stream writer has no output path, use FinishTo")

// SheetNameError reports why AddSheet rejected a name.
type SheetNameError struct {
	Name   string
	Reason string
}

func (e *SheetNameError) Error() string {
	return fmt.Sprintf("invalid sheet name %q: %s", e.Name, e.Reason)
}

func (e *SheetNameError) Unwrap() error {
	return ErrInvalidSheetName
}

// PartError wraps a failure to generate or store one package part.
type PartError struct {
	Path string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}
