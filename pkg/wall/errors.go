package wall

import (
	"errors"

	"github.com/tauraamui/videowall/pkg/resample"
	"github.com/tauraamui/xerror"
)

const (
	ConfigError    xerror.Kind = "config"
	EndpointError  xerror.Kind = "endpoint"
	TransportError xerror.Kind = "transport"
	InputError     xerror.Kind = "input"
)

var (
	ErrUnknownScaleMode = resample.ErrUnknownMode
	ErrInvalidRaster    = resample.ErrInvalidRaster
	ErrScale            = resample.ErrScale
	ErrResolve          = errors.New("unable to open wall endpoint")
	ErrNotConnected     = errors.New("failed to stream image, socket is not connected")
	ErrClosed           = errors.New("transmitter has been stopped")
	ErrSend             = errors.New("failed to send frame")
)
