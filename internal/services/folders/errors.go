package folders

import "errors"

var (
	// ErrFolderNotFound is returned for unknown folder ids, and for
	// attempts to delete a default folder
	ErrFolderNotFound = errors.New("folder not found")
)
