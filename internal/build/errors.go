package build

import "errors"

var (
	ErrWorkspace      = errors.New("workspace staging failed")
	ErrNativeStage    = errors.New("native build stage (make) failed")
	ErrSecondaryStage = errors.New("secondary build stage (dub) failed")
)
