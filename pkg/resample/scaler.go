package resample

import (
	"image"
	"strings"

	"github.com/tauraamui/videowall/pkg/raster"
	xdraw "golang.org/x/image/draw"
)

// Scaler fills all of dst with all of src. Implementations must be
// deterministic for identical inputs. On error dst contents are undefined.
type Scaler interface {
	Scale(dst, src *raster.Raster) error
}

func Default() Scaler {
	return NearestNeighbor()
}

func NearestNeighbor() Scaler {
	return &interpolatorScaler{interp: xdraw.NearestNeighbor}
}

func ApproxBiLinear() Scaler {
	return &interpolatorScaler{interp: xdraw.ApproxBiLinear}
}

func Resolve(name string) Scaler {
	switch strings.ToLower(name) {
	case "bilinear":
		return ApproxBiLinear()
	default:
		return Default()
	}
}

type interpolatorScaler struct {
	interp xdraw.Interpolator
}

func (s *interpolatorScaler) Scale(dst, src *raster.Raster) error {
	in := opaque(src)
	out := image.NewRGBA(dst.Bounds())
	s.interp.Scale(out, out.Bounds(), in, in.Bounds(), xdraw.Src, nil)

	n := dst.Format.Channels()
	for i, j := 0, 0; j+n <= len(dst.Pix); i, j = i+4, j+n {
		dst.Pix[j], dst.Pix[j+1], dst.Pix[j+2] = out.Pix[i], out.Pix[i+1], out.Pix[i+2]
		if n == 4 {
			dst.Pix[j+3] = 0xFF
		}
	}
	return nil
}

// opaque copies the colour channels of r into an NRGBA image with every
// alpha at 0xFF. Alpha never reaches the wire, so scaling on straight
// colour values keeps channels exact instead of premultiplying them.
func opaque(r *raster.Raster) *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	n := r.Format.Channels()
	for i, j := 0, 0; i+n <= len(r.Pix); i, j = i+n, j+4 {
		img.Pix[j], img.Pix[j+1], img.Pix[j+2], img.Pix[j+3] = r.Pix[i], r.Pix[i+1], r.Pix[i+2], 0xFF
	}
	return img
}
