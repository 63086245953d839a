package sketch

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/tauraamui/videowall/pkg/raster"
	"github.com/tauraamui/xerror"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const timestampLayout = "15:04:05.000"

var now = time.Now

type testPattern struct {
	label  string
	w, h   int
	frame  int
	base   *image.RGBA
	face   font.Face
	canvas *image.RGBA
}

// TestPattern renders three overlapping colour circles with a label and the
// current time drawn over them, sliding horizontally a little each frame.
func TestPattern(label string, w, h int) Source {
	if w <= 0 || h <= 0 {
		w, h = 280, 76
	}
	return &testPattern{label: label, w: w, h: h}
}

func (p *testPattern) CurrentFrame() (*raster.Raster, error) {
	if p.base == nil {
		p.base = renderBaseCanvas(p.w, p.h)
		p.canvas = image.NewRGBA(p.base.Bounds())
	}

	if p.face == nil {
		face, err := loadFace(float64(p.h) / 4)
		if err != nil {
			return nil, err
		}
		p.face = face
	}

	shift := p.frame % p.w
	p.frame++
	for y := 0; y < p.h; y++ {
		row := p.base.Pix[y*p.base.Stride : (y+1)*p.base.Stride]
		dst := p.canvas.Pix[y*p.canvas.Stride : (y+1)*p.canvas.Stride]
		n := copy(dst, row[shift*4:])
		copy(dst[n:], row[:shift*4])
	}

	lineHeight := p.face.Metrics().Height.Ceil()
	drawText(p.canvas, p.face, 2, lineHeight, p.label)
	drawText(p.canvas, p.face, 2, 2*lineHeight, now().Format(timestampLayout))

	return raster.FromImage(p.canvas), nil
}

func (p *testPattern) Close() error {
	p.base = nil
	p.canvas = nil
	p.face = nil
	return nil
}

func loadFace(size float64) (font.Face, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, xerror.Errorf("unable to parse test pattern font: %w", err)
	}
	if size < 6 {
		size = 6
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}

func drawText(canvas *image.RGBA, face font.Face, x, baseline int, text string) {
	if len(text) == 0 {
		return
	}
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baseline)},
	}
	d.DrawString(text)
}

func renderBaseCanvas(w, h int) *image.RGBA {
	hw, hh := float64(w)/2, float64(h)/2
	r := math.Min(hw, hh) / 2
	θ := 2 * math.Pi / 3
	radius := math.Min(hw, hh) * 1.2
	cr := &circle{hw - r*math.Sin(0), hh - r*math.Cos(0), radius}
	cg := &circle{hw - r*math.Sin(θ), hh - r*math.Cos(θ), radius}
	cb := &circle{hw - r*math.Sin(-θ), hh - r*math.Cos(-θ), radius}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, color.RGBA{
				R: cr.brightness(float64(x), float64(y)),
				G: cg.brightness(float64(x), float64(y)),
				B: cb.brightness(float64(x), float64(y)),
				A: 0xFF,
			})
		}
	}
	return img
}

type circle struct {
	x, y, r float64
}

func (c *circle) brightness(x, y float64) uint8 {
	dx, dy := c.x-x, c.y-y
	if math.Sqrt(dx*dx+dy*dy)/c.r > 1 {
		return 0
	}
	return 0xFF
}
