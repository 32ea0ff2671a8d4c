package store

import (
	"errors"
	"fmt"

	"github.com/fundwit/go-commons/types"
)

var ErrConcurrentModification = errors.New("concurrent modification")

// StoreError reports which store operation failed and for which project.
type StoreError struct {
	Op        string
	ProjectID types.ID
	Err       error
}

func (e *StoreError) Error() string {
	if e.ProjectID == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %d: %v", e.Op, e.ProjectID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func wrap(op string, id types.ID, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, ProjectID: id, Err: err}
}
