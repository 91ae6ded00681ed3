package artifact

import "errors"

var (
	ErrAcquisition = errors.New("artifact acquisition failed")
)
