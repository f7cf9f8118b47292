package watermark

import (
	"errors"
	"fmt"
)

// Kind classifies why watermarking a file failed.
type Kind int

const (
	KindImageLoad Kind = iota + 1
	KindFontLoad
	KindEncode
)

var (
	ErrImageLoad = errors.New("image load failed")
	ErrFontLoad  = errors.New("font load failed")
	ErrEncode    = errors.New("image encode failed")
)

func (k Kind) String() string {
	switch k {
	case KindImageLoad:
		return "image load"
	case KindFontLoad:
		return "font load"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is returned by every exported function in this package.
// errors.Is matches it against ErrImageLoad, ErrFontLoad and ErrEncode.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrImageLoad:
		return e.Kind == KindImageLoad
	case ErrFontLoad:
		return e.Kind == KindFontLoad
	case ErrEncode:
		return e.Kind == KindEncode
	}
	return false
}

func loadErr(path string, err error) error {
	return &Error{Kind: KindImageLoad, Path: path, Err: err}
}

func fontErr(path string, err error) error {
	return &Error{Kind: KindFontLoad, Path: path, Err: err}
}

func encodeErr(path string, err error) error {
	return &Error{Kind: KindEncode, Path: path, Err: err}
}
