package noshow_sweep

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("noshow_sweep: internal error")
)
