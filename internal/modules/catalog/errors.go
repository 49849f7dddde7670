package catalog

import "errors"

var (
	ErrNotFound        = errors.New("studio not found")
	ErrUnknownChannel  = errors.New("unknown stat channel")
	ErrNameRequired    = errors.New("name is required")
	ErrAddressRequired = errors.New("address is required")
)
