package launcher

import "errors"

var (
	ErrUnavailable = errors.New("no bldr binary available")
)
