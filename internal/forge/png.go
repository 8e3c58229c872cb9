package forge

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
)

const (
	pngCell  = 16 // pixels per expanded grid unit
	pngTitle = 44 // label strip below the maze
)

// WritePNG renders a puzzle to a PNG file: solid walls, the reference
// solution drawn through the cell centers, start and goal markers and a
// small label strip. Meant for sharing authored mazes outside the terminal.
func WritePNG(pz *puzzle.Puzzle, path string) error {
	expanded := pz.Grid.Expanded()
	mazeW := len(expanded[0]) * pngCell
	mazeH := len(expanded) * pngCell

	colors := map[string]color.RGBA{
		"background": {255, 255, 255, 255},
		"wall":       {66, 66, 66, 255},
		"solution":   {76, 175, 80, 255},
		"start":      {33, 150, 243, 255},
		"goal":       {244, 67, 54, 255},
		"text":       {66, 66, 66, 255},
	}

	img := image.NewRGBA(image.Rect(0, 0, mazeW, mazeH+pngTitle))
	draw.Draw(img, img.Bounds(), &image.Uniform{colors["background"]}, image.Point{}, draw.Src)

	for y, row := range expanded {
		for x, passable := range row {
			if passable {
				continue
			}
			fillUnit(img, x, y, colors["wall"])
		}
	}

	at := pz.Grid.Start()
	px, py := centerPx(at)
	for _, d := range pz.Solution {
		at = at.Step(d)
		nx, ny := centerPx(at)
		fillSegment(img, px, py, nx, ny, colors["solution"])
		px, py = nx, ny
	}

	sx, sy := centerPx(pz.Grid.Start())
	fillMarker(img, sx, sy, colors["start"])
	gx, gy := centerPx(pz.Grid.Goal())
	fillMarker(img, gx, gy, colors["goal"])

	drawLabel(img, fmt.Sprintf("mazetrace %s %dx%d", pz.Algorithm, pz.Grid.W, pz.Grid.H), mazeW/2, mazeH+18, colors["text"])
	drawLabel(img, fmt.Sprintf("optimal %d  %s", pz.Optimal(), pz.ID), mazeW/2, mazeH+34, colors["text"])

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fillUnit paints one expanded grid unit.
func fillUnit(img *image.RGBA, ex, ey int, c color.RGBA) {
	for y := ey * pngCell; y < (ey+1)*pngCell; y++ {
		for x := ex * pngCell; x < (ex+1)*pngCell; x++ {
			img.Set(x, y, c)
		}
	}
}

// centerPx returns the pixel center of a maze cell.
func centerPx(c maze.Coord) (int, int) {
	return (2*c.X+1)*pngCell + pngCell/2, (2*c.Y+1)*pngCell + pngCell/2
}

// fillSegment paints a thick axis-aligned line between two cell centers.
// Consecutive solution cells are orthogonal neighbors, so no general line
// drawing is needed.
func fillSegment(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	t := pngCell / 4
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0 - t; y <= y1+t; y++ {
		for x := x0 - t; x <= x1+t; x++ {
			img.Set(x, y, c)
		}
	}
}

// fillMarker paints a square marker centered on a pixel.
func fillMarker(img *image.RGBA, cx, cy int, c color.RGBA) {
	half := pngCell / 3
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			img.Set(x, y, c)
		}
	}
}

// drawLabel renders centered text with the built-in bitmap font.
func drawLabel(img *image.RGBA, text string, centerX, baselineY int, c color.RGBA) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	width := int(drawer.MeasureString(text) >> 6)
	drawer.Dot = fixed.Point26_6{
		X: fixed.I(centerX - width/2),
		Y: fixed.I(baselineY),
	}
	drawer.DrawString(text)
}
