package toolchain

import "errors"

var (
	ErrToolchain = errors.New("toolchain bootstrap failed")
)
