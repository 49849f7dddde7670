package upload

import "errors"

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds the 5 MB limit")
	ErrUnsupportedType = errors.New("only JPG, PNG and HEIC files are supported")
	ErrDecode          = errors.New("image could not be decoded")
	ErrEncode          = errors.New("image could not be encoded")
	ErrKeyExists       = errors.New("object already exists at this key")
	ErrURLResolution   = errors.New("public URL could not be resolved")
)
