package album

import "errors"

// Album errors
var (
	ErrDuplicateName    = errors.New("duplicate shape name")
	ErrNotFound         = errors.New("shape not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
