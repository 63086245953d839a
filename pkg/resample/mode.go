package resample

import (
	"errors"
	"strings"

	"github.com/tauraamui/xerror"
)

// Mode selects how a source raster is fitted onto the stream resolution.
type Mode int

const (
	// Crop takes a stream sized rectangle from the center of the source.
	Crop Mode = 1
	// Stretch scales the whole source onto the stream resolution,
	// ignoring aspect ratio.
	Stretch Mode = 2
)

var ErrUnknownMode = errors.New("unrecognized scale mode")

func (m Mode) Valid() bool {
	return m == Crop || m == Stretch
}

func (m Mode) String() string {
	switch m {
	case Crop:
		return "crop"
	case Stretch:
		return "stretch"
	default:
		return "unknown"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crop":
		return Crop, nil
	case "stretch", "":
		return Stretch, nil
	}
	return 0, xerror.Errorf("%w: %q", ErrUnknownMode, s)
}
