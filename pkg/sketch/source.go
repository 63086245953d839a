package sketch

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/tauraamui/videowall/pkg/raster"
)

var fs = afero.NewOsFs()

// Source hands out the most recently rendered frame on demand.
type Source interface {
	CurrentFrame() (*raster.Raster, error)
	Close() error
}

// NewBlank allocates a black, fully opaque raster.
func NewBlank(w, h int, f raster.Format) *raster.Raster {
	r := raster.New(w, h, f)
	if f == raster.RGBA {
		for i := 3; i < len(r.Pix); i += 4 {
			r.Pix[i] = 0xFF
		}
	}
	return r
}

type Settings struct {
	Kind   string
	Label  string
	Path   string
	Width  int
	Height int
}

func Resolve(s Settings) (Source, error) {
	switch strings.ToLower(s.Kind) {
	case "image":
		return OpenImage(s.Path)
	default:
		return TestPattern(s.Label, s.Width, s.Height), nil
	}
}
