// Package cvscaler is a resample.Scaler backed by OpenCV. It needs the
// OpenCV shared libraries at build and run time, so it lives apart from the
// pure Go scalers.
package cvscaler

import (
	"image"

	"github.com/tauraamui/videowall/pkg/raster"
	"github.com/tauraamui/videowall/pkg/resample"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

type openCVScaler struct {
	interp gocv.InterpolationFlags
}

// New returns a nearest neighbour OpenCV scaler.
func New() resample.Scaler {
	return &openCVScaler{interp: gocv.InterpolationNearestNeighbor}
}

func NewLinear() resample.Scaler {
	return &openCVScaler{interp: gocv.InterpolationLinear}
}

func (s *openCVScaler) Scale(dst, src *raster.Raster) error {
	if err := src.Validate(); err != nil {
		return err
	}

	srcMat, err := gocv.NewMatFromBytes(src.H, src.W, matType(src.Format), src.Pix)
	if err != nil {
		return xerror.Errorf("unable to load raster into OpenCV mat: %w", err)
	}
	defer srcMat.Close()

	dstMat := gocv.NewMat()
	defer dstMat.Close()

	gocv.Resize(srcMat, &dstMat, image.Point{X: dst.W, Y: dst.H}, 0, 0, s.interp)
	if dstMat.Empty() || dstMat.Cols() != dst.W || dstMat.Rows() != dst.H {
		return xerror.Errorf("OpenCV resize produced %dx%d, wanted %dx%d", dstMat.Cols(), dstMat.Rows(), dst.W, dst.H)
	}

	out := dstMat.ToBytes()
	sn, dn := src.Format.Channels(), dst.Format.Channels()
	if len(out) != dst.W*dst.H*sn {
		return xerror.Errorf("OpenCV resize produced %d bytes, wanted %d", len(out), dst.W*dst.H*sn)
	}

	for i, j := 0, 0; i+sn <= len(out) && j+dn <= len(dst.Pix); i, j = i+sn, j+dn {
		dst.Pix[j], dst.Pix[j+1], dst.Pix[j+2] = out[i], out[i+1], out[i+2]
		if dn == 4 {
			dst.Pix[j+3] = 0xFF
		}
	}
	return nil
}

func matType(f raster.Format) gocv.MatType {
	if f == raster.RGBA {
		return gocv.MatTypeCV8UC4
	}
	return gocv.MatTypeCV8UC3
}
