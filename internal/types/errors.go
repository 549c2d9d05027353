package types

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderAlreadyDone = errors.New("order already done")
	ErrOrderExists      = errors.New("order already exists")
)

// CorruptFileError means a backing file exists but could not be parsed.
// It is distinct from a missing file, which is just an empty board.
type CorruptFileError struct {
	Path string
	Err  error
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("file %s is corrupt: %s", e.Path, e.Err)
}

func (e *CorruptFileError) Unwrap() error {
	return e.Err
}
