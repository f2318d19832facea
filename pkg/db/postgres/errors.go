package postgres

import (
	"fmt"

	kdb "github.com/pronas-suite/aicore/pkg/db"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return kdb.ErrMissing
}

// a record with the same identity is registered already.
type Duplicated struct {
	Table    string
	Identity string
}

var _ error = Duplicated{}

func (d Duplicated) Error() string {
	return fmt.Sprintf("%s is already registered in %s", d.Identity, d.Table)
}

func (d Duplicated) Unwrap() error {
	return kdb.ErrAlreadyExists
}
