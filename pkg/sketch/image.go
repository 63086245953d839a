package sketch

import (
	"image"
	// decoders for the formats an image source accepts
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/tauraamui/videowall/pkg/log"
	"github.com/tauraamui/videowall/pkg/raster"
	"github.com/tauraamui/xerror"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type imageSource struct {
	path  string
	frame *raster.Raster
}

// OpenImage decodes a still image once and serves it as every frame.
func OpenImage(path string) (Source, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, xerror.Errorf("unable to open image source %s: %w", path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, xerror.Errorf("unable to decode image source %s: %w", path, err)
	}

	log.Info("Loaded %s image source %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return &imageSource{path: path, frame: raster.FromImage(img)}, nil
}

func (s *imageSource) CurrentFrame() (*raster.Raster, error) {
	if s.frame == nil {
		return nil, xerror.Errorf("image source %s is closed", s.path)
	}
	return s.frame, nil
}

func (s *imageSource) Close() error {
	s.frame = nil
	return nil
}
