package httpserver

import "errors"

var (
	// ErrStart indicates the server could not be started or exited abnormally.
	ErrStart = errors.New("httpserver: start failed")
)
