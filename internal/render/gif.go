package render

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ndsquared/snakecore/internal/snake"
)

const (
	canvasWidth  = 64
	canvasHeight = 64
	cellSize     = 3
)

// RenderGIF renders a sequence of boards (cmd/server passes the boards
// of the game played so far) into an animated GIF, one frame
// per board. It returns the encoded bytes directly rather than pushing
// them anywhere — callers (cmd/server) decide whether to save, stream,
// or discard them.
func RenderGIF(frames []*snake.Board, delayPer10ms int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("render: no frames to encode")
	}
	if delayPer10ms <= 0 {
		delayPer10ms = 20
	}

	var images []*image.Paletted
	var delays []int
	for i, b := range frames {
		img, palette := renderBoardToImage(b)
		paletted := image.NewPaletted(img.Bounds(), palette)
		draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})
		images = append(images, paletted)
		if i == len(frames)-1 {
			delays = append(delays, delayPer10ms*4)
		} else {
			delays = append(delays, delayPer10ms)
		}
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &gif.GIF{Image: images, Delay: delays}); err != nil {
		return nil, fmt.Errorf("render: encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

func renderBoardToImage(b *snake.Board) (*image.RGBA, []color.Color) {
	palette := []color.Color{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 255, 255, 255},
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
		color.RGBA{0, 0, 255, 255},
		color.RGBA{100, 100, 100, 255},
	}

	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)

	offsetX := 0
	offsetY := 0

	for i, a := range b.Agents {
		bodyColor := generateColor(a.ID)
		headColor := lighten(bodyColor)
		palette = append(palette, bodyColor, headColor)

		for j, segment := range a.Body {
			flippedY := b.Height - 1 - segment.Y
			x := offsetX + segment.X*cellSize
			y := offsetY + flippedY*cellSize
			if j == 0 {
				drawCell(img, x, y, headColor)
			} else {
				drawCell(img, x, y, bodyColor)
			}
		}
		addLabel(img, 2, 10+i*10, fmt.Sprintf("%c:%d", 'a'+i, a.Length()), bodyColor)
	}

	green := color.RGBA{0, 255, 0, 255}
	for _, f := range b.Food {
		flippedY := b.Height - 1 - f.Y
		drawCell(img, offsetX+f.X*cellSize, offsetY+flippedY*cellSize, green)
	}

	return img, palette
}

func generateColor(name string) color.RGBA {
	h := sha1.New()
	h.Write([]byte(name))
	sum := h.Sum(nil)
	return color.RGBA{sum[0], sum[1], sum[2], 255}
}

func lighten(c color.RGBA) color.RGBA {
	return color.RGBA{R: lightenChannel(c.R), G: lightenChannel(c.G), B: lightenChannel(c.B), A: c.A}
}

func lightenChannel(v uint8) uint8 {
	n := int(v) + 40
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

func drawCell(img *image.RGBA, x, y int, c color.RGBA) {
	for i := 0; i < cellSize; i++ {
		for j := 0; j < cellSize; j++ {
			px, py := x+i, y+j
			if px >= 0 && px < canvasWidth && py >= 0 && py < canvasHeight {
				img.Set(px, py, c)
			}
		}
	}
}

func addLabel(img *image.RGBA, x, y int, label string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}
