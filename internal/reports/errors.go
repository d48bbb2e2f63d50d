package reports

import "errors"

var (
	ErrRenderFailed = errors.New("report rendering failed")
	ErrWriteFailed  = errors.New("artifact write failed")
)
