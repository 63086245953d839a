package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/tauraamui/xerror"
)

// Format describes how many interleaved 8-bit channels each pixel holds.
type Format int

const (
	RGB  Format = 3
	RGBA Format = 4
)

func (f Format) Channels() int {
	return int(f)
}

func (f Format) Valid() bool {
	return f == RGB || f == RGBA
}

func (f Format) String() string {
	switch f {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	default:
		return "UNKNOWN"
	}
}

type Dimensions struct {
	W, H int
}

// Raster is a rectangular grid of interleaved 8-bit colour channels stored
// row-major. len(Pix) is always W*H*Format.Channels() for a valid raster.
//
// Raster implements draw.Image so it can be used directly with the image
// and golang.org/x/image/draw packages.
type Raster struct {
	W, H   int
	Format Format
	Pix    []byte
}

func New(w, h int, f Format) *Raster {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Raster{W: w, H: h, Format: f, Pix: make([]byte, w*h*f.Channels())}
}

func (r *Raster) Dimensions() Dimensions {
	return Dimensions{W: r.W, H: r.H}
}

func (r *Raster) Stride() int {
	return r.W * r.Format.Channels()
}

// PixOffset returns the index of the first channel of pixel (x, y).
func (r *Raster) PixOffset(x, y int) int {
	return y*r.Stride() + x*r.Format.Channels()
}

// Validate checks the buffer length invariant.
func (r *Raster) Validate() error {
	if r == nil {
		return xerror.New("raster is nil")
	}
	if !r.Format.Valid() {
		return xerror.Errorf("raster has unsupported format: %d", int(r.Format))
	}
	if r.W <= 0 || r.H <= 0 {
		return xerror.Errorf("raster has empty dimensions: %dx%d", r.W, r.H)
	}
	if want := r.W * r.H * r.Format.Channels(); len(r.Pix) != want {
		return xerror.Errorf("raster buffer length %d does not match %dx%dx%d", len(r.Pix), r.W, r.H, r.Format.Channels())
	}
	return nil
}

// Copy returns a deep copy of r.
func (r *Raster) Copy() *Raster {
	pix := make([]byte, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{W: r.W, H: r.H, Format: r.Format, Pix: pix}
}

// RGBAt returns the colour channels of pixel (x, y), ignoring alpha.
func (r *Raster) RGBAt(x, y int) (uint8, uint8, uint8) {
	i := r.PixOffset(x, y)
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2]
}

func (r *Raster) SetRGB(x, y int, red, green, blue uint8) {
	i := r.PixOffset(x, y)
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = red, green, blue
	if r.Format == RGBA {
		r.Pix[i+3] = 0xFF
	}
}

// Fill sets every pixel to the given colour, alpha fully opaque.
func (r *Raster) Fill(c color.NRGBA) {
	n := r.Format.Channels()
	for i := 0; i+n <= len(r.Pix); i += n {
		r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
		if n == 4 {
			r.Pix[i+3] = c.A
		}
	}
}

func (r *Raster) ColorModel() color.Model {
	return color.NRGBAModel
}

func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.W, r.H)
}

func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.NRGBA{}
	}
	i := r.PixOffset(x, y)
	c := color.NRGBA{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2], A: 0xFF}
	if r.Format == RGBA {
		c.A = r.Pix[i+3]
	}
	return c
}

func (r *Raster) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := r.PixOffset(x, y)
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = nc.R, nc.G, nc.B
	if r.Format == RGBA {
		r.Pix[i+3] = nc.A
	}
}

// FromImage converts any image.Image into an RGBA raster. *image.NRGBA
// sources are copied row by row, everything else goes through draw.Draw.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := New(b.Dx(), b.Dy(), RGBA)

	switch src := img.(type) {
	case *Raster:
		return src.Copy()
	case *image.NRGBA:
		for y := 0; y < r.H; y++ {
			start := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(r.Pix[y*r.Stride():(y+1)*r.Stride()], src.Pix[start:start+r.Stride()])
		}
		return r
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, r.W, r.H))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	copy(r.Pix, nrgba.Pix)
	return r
}

// ToImage returns an *image.NRGBA copy of r.
func (r *Raster) ToImage() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	draw.Draw(img, img.Bounds(), r, image.Point{}, draw.Src)
	return img
}
