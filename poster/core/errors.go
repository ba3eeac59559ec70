package core

import "errors"

var (
	ErrConfig    = errors.New("configuration error")
	ErrNetwork   = errors.New("network error")
	ErrDataShape = errors.New("unexpected data shape")
	ErrPlatform  = errors.New("messaging platform error")

	ErrBadArguments  = errors.New("arguments are not acceptable")
	ErrNilDependency = errors.New("poster service: nil dependency")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindNetwork
	KindDataShape
	KindPlatform
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNetwork:
		return "network"
	case KindDataShape:
		return "data_shape"
	case KindPlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// Classify maps an error onto its taxonomy bucket.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrConfig):
		return KindConfig
	case errors.Is(err, ErrPlatform):
		return KindPlatform
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrDataShape), errors.Is(err, ErrBadArguments):
		return KindDataShape
	default:
		return KindUnknown
	}
}
