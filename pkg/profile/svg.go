package profile

import (
	"fmt"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
)

// Layer is one profile in a cross-section rendering. Shift moves the
// profile vertically into the common frame, matching the placement
// offset of the revolved solid. Fill is an SVG color.
type Layer struct {
	Name    string
	Profile Profile
	Shift   float64
	Fill    string
	Opacity float64
}

const (
	svgMargin = 40
	svgExtent = 720 // target pixel size of the larger drawing axis
)

// WriteSVG renders the layered cross-section to w. Each layer is
// drawn mirrored about the rotation axis so the output reads as a
// full vertical cut through the assembly.
func WriteSVG(w io.Writer, layers []Layer) error {
	if len(layers) == 0 {
		return fmt.Errorf("no profiles to render")
	}

	var rmax float64
	zmin, zmax := math.MaxFloat64, -math.MaxFloat64
	for _, l := range layers {
		if l.Profile.Len() == 0 {
			return fmt.Errorf("layer %q has an empty profile", l.Name)
		}
		if r := l.Profile.MaxR(); r > rmax {
			rmax = r
		}
		if z := l.Profile.MinZ() + l.Shift; z < zmin {
			zmin = z
		}
		if z := l.Profile.MaxZ() + l.Shift; z > zmax {
			zmax = z
		}
	}
	if rmax <= 0 || zmax <= zmin {
		return fmt.Errorf("profiles span no drawable extent")
	}

	scale := svgExtent / math.Max(2*rmax, zmax-zmin)
	width := int(math.Round(2*rmax*scale)) + 2*svgMargin
	height := int(math.Round((zmax-zmin)*scale)) + 2*svgMargin

	px := func(r float64) int {
		return svgMargin + int(math.Round((rmax+r)*scale))
	}
	py := func(z float64) int {
		return svgMargin + int(math.Round((zmax-z)*scale))
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	for _, l := range layers {
		opacity := l.Opacity
		if opacity == 0 {
			opacity = 1
		}
		fill := l.Fill
		if fill == "" {
			fill = "none"
		}
		style := fmt.Sprintf("fill:%s;fill-opacity:%.2f;stroke:black;stroke-width:1", fill, opacity)

		n := l.Profile.Len()
		xs := make([]int, n)
		ys := make([]int, n)
		xm := make([]int, n)
		for i := 0; i < n; i++ {
			xs[i] = px(l.Profile.R[i])
			xm[i] = px(-l.Profile.R[i])
			ys[i] = py(l.Profile.Z[i] + l.Shift)
		}
		canvas.Gid(l.Name)
		canvas.Polygon(xs, ys, style)
		canvas.Polygon(xm, ys, style)
		canvas.Gend()
	}
	canvas.End()
	return nil
}

// WriteSVGFile renders the layered cross-section to a file.
func WriteSVGFile(path string, layers []Layer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSVG(f, layers); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
