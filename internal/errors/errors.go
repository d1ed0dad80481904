package errors

import "errors"

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCacheMissing       = errors.New("catalog cache missing")
	ErrSetNotFound        = errors.New("set not found in catalog")
)
