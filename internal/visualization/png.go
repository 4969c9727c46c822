package visualization

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/constants"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/layout"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Caption is the explanatory text drawn under the graph.
const Caption = "The dense cluster (red nodes) forms from the community sharing similar tagging habits, distinct from other users (black nodes)."

// Title returns the figure title for a graph with n nodes.
func Title(n int) string {
	return fmt.Sprintf("Social Network Graph from Tagging Activity (%d Users)", n)
}

// Options controls image rendering.
type Options struct {
	Width  int
	Height int
	Layout layout.Config
}

// DefaultOptions returns a 1600x1400 canvas with the default spring layout.
func DefaultOptions() Options {
	return Options{
		Width:  constants.DefaultCanvasWidth,
		Height: constants.DefaultCanvasHeight,
		Layout: layout.DefaultConfig(),
	}
}

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorCommunity  = color.RGBA{255, 0, 0, 255}
	colorOther      = color.RGBA{0, 0, 0, 255}
	colorEdge       = color.RGBA{128, 128, 128, 255}
	colorText       = color.RGBA{0, 0, 0, 255}
	// lightblue at 50% over white
	colorCaptionBox = color.RGBA{214, 235, 242, 255}
)

// Drawing is done at 100 dpi, so one typographic point is 100/72 pixels.
const pxPerPoint = 100.0 / 72.0

// points converts a typographic size to whole pixels.
func points(n float64) int {
	return int(math.Round(n * pxPerPoint))
}

const (
	titlePoints   = 18
	captionPoints = 12
	captionPadPts = 5
)

// Plot area as fractions of the canvas, measured from the top-left corner.
const (
	plotLeft   = 0.125
	plotRight  = 0.9
	plotTop    = 0.12
	plotBottom = 0.89
	plotMargin = 0.05
)

// RenderPNG draws g with a spring layout: community nodes red, other nodes
// black, gray edges whose width grows with weight, a title, and a caption.
func RenderPNG(g *graph.Graph, opts Options) ([]byte, error) {
	img, err := DrawImage(g, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DrawImage renders g onto a new RGBA canvas.
func DrawImage(g *graph.Graph, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	w, h := opts.Width, opts.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, xdraw.Src)

	pos := layout.Spring(g, opts.Layout)
	toCanvas := canvasMapper(pos, w, h)

	// All shapes in one pass share a winding direction, so overlaps add up
	// instead of cancelling.
	z := vector.NewRasterizer(w, h)
	for _, e := range g.Edges() {
		x0, y0 := toCanvas(pos[e.Source])
		x1, y1 := toCanvas(pos[e.Target])
		width := math.Max(float64(e.Weight)*constants.EdgeWidthPerWeight*pxPerPoint, 0.5)
		addLine(z, x0, y0, x1, y1, float32(width))
	}
	z.Draw(img, img.Bounds(), image.NewUniform(colorEdge), image.Point{})

	radius := float32(math.Sqrt(constants.NodeSizePoints2) / 2 * pxPerPoint)
	for _, pass := range []struct {
		community bool
		col       color.RGBA
	}{{false, colorOther}, {true, colorCommunity}} {
		z.Reset(w, h)
		for _, u := range g.Nodes() {
			if u.Community != pass.community {
				continue
			}
			x, y := toCanvas(pos[u.ID])
			addCircle(z, x, y, radius)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(pass.col), image.Point{})
	}

	title := Title(g.NodeCount())
	tw, th := textSize(title, titlePoints)
	titleTop := int(float64(h)*plotTop) - th - points(6)
	drawText(img, title, image.Rect((w-tw)/2, titleTop, (w+tw)/2, titleTop+th), colorText)

	cw, ch := textSize(Caption, captionPoints)
	pad := points(captionPadPts)
	captionBottom := h - int(0.01*float64(h))
	box := image.Rect((w-cw)/2-pad, captionBottom-ch-2*pad, (w+cw)/2+pad, captionBottom)
	xdraw.Draw(img, box, image.NewUniform(colorCaptionBox), image.Point{}, xdraw.Src)
	drawText(img, Caption, image.Rect((w-cw)/2, box.Min.Y+pad, (w+cw)/2, box.Min.Y+pad+ch), colorText)

	return img, nil
}

// canvasMapper maps layout positions into the plot area of a w x h canvas.
// The data range fills the plot with a 5% margin on each side; a range of zero
// width is centered.
func canvasMapper(pos map[string]layout.Point, w, h int) func(layout.Point) (float32, float32) {
	lo, hi := layout.Bounds(pos)
	norm := func(v, lo, hi float64) float64 {
		if hi-lo == 0 {
			return 0.5
		}
		return plotMargin + (1-2*plotMargin)*(v-lo)/(hi-lo)
	}
	return func(p layout.Point) (float32, float32) {
		x := float64(w) * (plotLeft + norm(p.X, lo.X, hi.X)*(plotRight-plotLeft))
		y := float64(h) * (plotTop + (1-norm(p.Y, lo.Y, hi.Y))*(plotBottom-plotTop))
		return float32(x), float32(y)
	}
}

// addLine adds a line segment of the given width as a quadrilateral.
func addLine(z *vector.Rasterizer, x0, y0, x1, y1, width float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

var textFace = basicfont.Face7x13

// textSize returns the pixel size of s drawn at the given point size.
func textSize(s string, points float64) (int, int) {
	scale := points * pxPerPoint / float64(textFace.Height)
	w := font.MeasureString(textFace, s).Ceil()
	return int(math.Ceil(float64(w) * scale)), int(math.Ceil(float64(textFace.Height) * scale))
}

// drawText renders s with the bitmap face and scales it into dst.
func drawText(img *image.RGBA, s string, dst image.Rectangle, col color.Color) {
	w := font.MeasureString(textFace, s).Ceil()
	src := image.NewRGBA(image.Rect(0, 0, w, textFace.Height))
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(col),
		Face: textFace,
		Dot:  fixed.P(0, textFace.Ascent),
	}
	d.DrawString(s)
	xdraw.ApproxBiLinear.Scale(img, dst, src, src.Bounds(), xdraw.Over, nil)
}
