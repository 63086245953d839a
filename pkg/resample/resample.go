package resample

import (
	"errors"

	"github.com/tauraamui/videowall/pkg/raster"
	"github.com/tauraamui/xerror"
)

var (
	ErrInvalidRaster = errors.New("invalid raster")
	ErrScale         = errors.New("unable to scale raster")
)

// Resample normalises src to exactly w x h using the default scaler.
func Resample(src *raster.Raster, w, h int, mode Mode) (*raster.Raster, error) {
	return ResampleWith(Default(), src, w, h, mode)
}

// ResampleWith normalises src to exactly w x h. A source already at the
// target size is returned as a plain copy regardless of mode. Anything else
// is produced as a new RGB raster.
func ResampleWith(s Scaler, src *raster.Raster, w, h int, mode Mode) (*raster.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, xerror.Errorf("%w: %s", ErrInvalidRaster, err.Error())
	}
	if w <= 0 || h <= 0 {
		return nil, xerror.Errorf("%w: target dimensions %dx%d", ErrInvalidRaster, w, h)
	}

	if src.W == w && src.H == h {
		return src.Copy(), nil
	}

	switch mode {
	case Crop:
		return crop(src, w, h), nil
	case Stretch:
		if s == nil {
			s = Default()
		}
		dst := raster.New(w, h, raster.RGB)
		if err := s.Scale(dst, src); err != nil {
			return nil, xerror.Errorf("%w: %v", ErrScale, err)
		}
		return dst, nil
	}

	return nil, xerror.Errorf("%w: %d", ErrUnknownMode, int(mode))
}

// CropOrigin is the top left corner of a w x h rectangle centred on a
// srcW x srcH source. Either coordinate is negative when the source is
// smaller than the target along that axis.
func CropOrigin(srcW, srcH, w, h int) (x, y int) {
	return floorDiv(srcW-w, 2), floorDiv(srcH-h, 2)
}

// crop copies the centred rectangle. Reads outside the source are clamped to
// the nearest edge pixel, so smaller sources come out edge padded.
func crop(src *raster.Raster, w, h int) *raster.Raster {
	dst := raster.New(w, h, raster.RGB)
	ox, oy := CropOrigin(src.W, src.H, w, h)

	i := 0
	for y := 0; y < h; y++ {
		sy := clamp(oy+y, src.H-1)
		for x := 0; x < w; x++ {
			si := src.PixOffset(clamp(ox+x, src.W-1), sy)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = src.Pix[si], src.Pix[si+1], src.Pix[si+2]
			i += 3
		}
	}
	return dst
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
