package cssdump

import (
	"errors"
	"fmt"
)

// Op names the filesystem operation behind a FatalError.
type Op string

const (
	OpCreateDirectory Op = "cannot create directory"
	OpWriteFile       Op = "cannot write file"
)

// FatalError aborts a rewrite pass. Resources written before it are kept.
type FatalError struct {
	Op   Op
	Path string
	Err  error
}

func (e *FatalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s", e.Op, e.Path)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// asFatal passes FatalErrors through and wraps anything else.
func asFatal(op Op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FatalError
	if errors.As(err, &fe) {
		return err
	}
	return &FatalError{Op: op, Path: path, Err: err}
}
