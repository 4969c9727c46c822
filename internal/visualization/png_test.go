package visualization

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/layout"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/models"
)

func TestRenderPNG_Decodes(t *testing.T) {
	data, err := RenderPNG(testGraph(t), smallOptions())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 350 {
		t.Errorf("size = %dx%d, want 400x350", b.Dx(), b.Dy())
	}
}

func TestRenderPNG_InvalidSize(t *testing.T) {
	opts := smallOptions()
	opts.Height = -1
	if _, err := RenderPNG(testGraph(t), opts); err == nil {
		t.Error("expected error for invalid canvas size")
	}
}

func TestDrawImage_NodeColors(t *testing.T) {
	g := testGraph(t)
	opts := DefaultOptions()
	img, err := DrawImage(g, opts)
	if err != nil {
		t.Fatalf("DrawImage: %v", err)
	}

	pos := layout.Spring(g, opts.Layout)
	toCanvas := canvasMapper(pos, opts.Width, opts.Height)
	center := func(id string) image.Point {
		x, y := toCanvas(pos[id])
		return image.Pt(int(x), int(y))
	}

	tests := []struct {
		id   string
		want color.RGBA
	}{
		{"CommUser_0", colorCommunity},
		{"CommUser_1", colorCommunity},
		{"OtherUser_0", colorOther},
		{"OtherUser_1", colorOther},
	}
	for _, tt := range tests {
		c := center(tt.id)
		if got := img.RGBAAt(c.X, c.Y); got != tt.want {
			t.Errorf("%s center pixel = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestDrawImage_CaptionBox(t *testing.T) {
	opts := smallOptions()
	opts.Width = 1600
	img, err := DrawImage(graph.New([]models.User{{ID: "OtherUser_0"}}), opts)
	if err != nil {
		t.Fatalf("DrawImage: %v", err)
	}

	// The caption box is centered near the bottom; its corner is plain box color.
	cw, ch := textSize(Caption, captionPoints)
	pad := points(captionPadPts)
	bottom := opts.Height - int(0.01*float64(opts.Height))
	corner := image.Pt((opts.Width-cw)/2-pad+1, bottom-ch-2*pad+1)
	if got := img.RGBAAt(corner.X, corner.Y); got != colorCaptionBox {
		t.Errorf("caption box pixel = %v, want %v", got, colorCaptionBox)
	}
}

func TestRenderPNG_DefaultOptions(t *testing.T) {
	data, err := RenderPNG(testGraph(t), DefaultOptions())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1600 || b.Dy() != 1400 {
		t.Errorf("size = %dx%d, want 1600x1400", b.Dx(), b.Dy())
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		pts  float64
		want int
	}{
		{0, 0},
		{5, 7},
		{6, 8},
		{18, 25},
		{72, 100},
	}
	for _, tt := range tests {
		if got := points(tt.pts); got != tt.want {
			t.Errorf("points(%v) = %d, want %d", tt.pts, got, tt.want)
		}
	}
}

func TestCanvasMapper(t *testing.T) {
	const w, h = 1000, 1000
	pos := map[string]layout.Point{
		"a": {X: -0.5, Y: -1},
		"b": {X: 0.5, Y: 1},
	}
	toCanvas := canvasMapper(pos, w, h)

	x, y := toCanvas(pos["a"])
	wantX := float32(w * (plotLeft + plotMargin*(plotRight-plotLeft)))
	wantY := float32(h * (plotTop + (1-plotMargin)*(plotBottom-plotTop)))
	if math.Abs(float64(x-wantX)) > 0.01 || math.Abs(float64(y-wantY)) > 0.01 {
		t.Errorf("a = (%v, %v), want (%v, %v)", x, y, wantX, wantY)
	}

	// The lowest x sits on the left margin and the highest y nearest the top.
	bx, by := toCanvas(pos["b"])
	if bx <= x || by >= y {
		t.Errorf("b = (%v, %v) not right of and above a = (%v, %v)", bx, by, x, y)
	}

	single := canvasMapper(map[string]layout.Point{"only": {}}, w, h)
	cx, cy := single(layout.Point{})
	midX := float32(w * (plotLeft + 0.5*(plotRight-plotLeft)))
	midY := float32(h * (plotTop + 0.5*(plotBottom-plotTop)))
	if math.Abs(float64(cx-midX)) > 0.01 || math.Abs(float64(cy-midY)) > 0.01 {
		t.Errorf("single node = (%v, %v), want center (%v, %v)", cx, cy, midX, midY)
	}
}

func TestTitle(t *testing.T) {
	if got, want := Title(150), "Social Network Graph from Tagging Activity (150 Users)"; got != want {
		t.Errorf("Title(150) = %q, want %q", got, want)
	}
}
