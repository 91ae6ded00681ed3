package archive

import "errors"

var (
	ErrNoObjects = errors.New("no object files to aggregate")
	ErrArchive   = errors.New("static archive creation failed")
)
