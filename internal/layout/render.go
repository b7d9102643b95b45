package layout

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

const (
	renderPadding = 8
	minRenderSize = 32
	// MaxRenderSize caps both thumbnail dimensions, padding excluded.
	MaxRenderSize = 4096
)

var (
	colorBackground = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	colorOnline     = color.RGBA{0x3b, 0x82, 0xf6, 0xff}
	colorOffline    = color.RGBA{0x6b, 0x72, 0x80, 0xff}
	colorDisabled   = color.RGBA{0x37, 0x3a, 0x45, 0xff}
	colorBorder     = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	colorSelected   = color.RGBA{0xfa, 0xcc, 0x15, 0xff}
	colorLabel      = color.White
)

// RenderOptions controls the layout thumbnail.
type RenderOptions struct {
	Width    int // image width in pixels; height follows the layout's aspect ratio, up to MaxRenderSize
	Selected int // index of the highlighted rectangle, or -1
}

// Bounds returns the bounding box of all rectangles in logical pixels.
func Bounds(rects []models.ResolvedRect) image.Rectangle {
	var b image.Rectangle
	for i, r := range rects {
		rr := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
		if i == 0 {
			b = rr
			continue
		}
		b = b.Union(rr)
	}
	return b
}

// Render draws the rectangles scaled into a thumbnail, labelling each one
// with its connector.
func Render(rects []models.ResolvedRect, opts RenderOptions) *image.RGBA {
	width := clampInt(opts.Width, minRenderSize, MaxRenderSize)
	height := width * 9 / 16
	bounds := Bounds(rects)
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return blank(width, height)
	}

	// Tall layouts are fitted by height so neither side exceeds MaxRenderSize.
	dx, dy := float64(bounds.Dx()), float64(bounds.Dy())
	factor := math.Min(float64(width)/dx, MaxRenderSize/dy)
	width = clampInt(int(math.Round(dx*factor)), minRenderSize, MaxRenderSize)
	height = clampInt(int(math.Round(dy*factor)), minRenderSize, MaxRenderSize)

	img := blank(width, height)
	project := func(v, origin int) int {
		return renderPadding + int(float64(v-origin)*factor)
	}

	for i, r := range rects {
		area := image.Rect(
			project(r.X, bounds.Min.X), project(r.Y, bounds.Min.Y),
			project(r.X+r.Width, bounds.Min.X), project(r.Y+r.Height, bounds.Min.Y),
		)
		fill := colorOffline
		switch {
		case r.Output.Enabled != nil && !*r.Output.Enabled:
			fill = colorDisabled
		case r.Live != nil:
			fill = colorOnline
		}
		draw.Draw(img, area, &image.Uniform{fill}, image.Point{}, draw.Src)

		border := color.Color(colorBorder)
		thickness := 1
		if i == opts.Selected {
			border = colorSelected
			thickness = 3
		}
		drawFrame(img, area, thickness, border)
		drawLabel(img, area, r.Connector)
	}
	return img
}

func blank(width, height int) *image.RGBA {
	if height < minRenderSize {
		height = minRenderSize
	}
	img := image.NewRGBA(image.Rect(0, 0, width+2*renderPadding, height+2*renderPadding))
	draw.Draw(img, img.Bounds(), &image.Uniform{colorBackground}, image.Point{}, draw.Src)
	return img
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WritePNG renders rects and encodes the thumbnail as PNG.
func WritePNG(w io.Writer, rects []models.ResolvedRect, opts RenderOptions) error {
	return png.Encode(w, Render(rects, opts))
}

func drawFrame(img *image.RGBA, r image.Rectangle, thickness int, col color.Color) {
	u := &image.Uniform{col}
	for t := 0; t < thickness; t++ {
		in := r.Inset(t)
		if in.Empty() {
			return
		}
		draw.Draw(img, image.Rect(in.Min.X, in.Min.Y, in.Max.X, in.Min.Y+1), u, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(in.Min.X, in.Max.Y-1, in.Max.X, in.Max.Y), u, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(in.Min.X, in.Min.Y, in.Min.X+1, in.Max.Y), u, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(in.Max.X-1, in.Min.Y, in.Max.X, in.Max.Y), u, image.Point{}, draw.Src)
	}
}

// drawLabel centers text in r, truncating it to the rectangle's width.
func drawLabel(img *image.RGBA, r image.Rectangle, text string) {
	face := basicfont.Face7x13
	maxChars := (r.Dx() - 4) / face.Advance
	if maxChars <= 0 || r.Dy() < face.Height {
		return
	}
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorLabel),
		Face: face,
	}
	textW := d.MeasureString(text).Ceil()
	x := r.Min.X + (r.Dx()-textW)/2
	y := r.Min.Y + (r.Dy()+face.Ascent)/2
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d.DrawString(text)
}
