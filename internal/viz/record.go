package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	cellW = 8
	cellH = 16

	// maxRecordFrames caps a recording at roughly 30s at 60fps.
	maxRecordFrames = 1800
)

var errNothingRecorded = errors.New("no frames recorded")

// gifRecorder rasterizes canvas frames into a paletted animation. Palette
// index 0 is the background, 1 line ink and 2 node ink.
type gifRecorder struct {
	palette color.Palette
	frames  []*image.Paletted
	delay   int
}

func newGIFRecorder(t Theme, lineAlpha float64, fps int) *gifRecorder {
	bg := parseHex(string(t.Background))
	line := blend(parseHex(string(t.Secondary)), bg, lineAlpha)
	delay := 2
	if fps > 0 {
		delay = max(1, 100/fps)
	}
	return &gifRecorder{
		palette: color.Palette{bg, line, parseHex(string(t.Primary))},
		delay:   delay,
	}
}

func (r *gifRecorder) Len() int { return len(r.frames) }

// Capture appends the canvas as one frame. Frames past the cap are dropped.
func (r *gifRecorder) Capture(c *Canvas) {
	if len(r.frames) >= maxRecordFrames || c.Width == 0 || c.Height == 0 {
		return
	}
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), r.palette)
	dotW, dotH := cellW/2, cellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := c.Grid[row][col] - brailleBase
			if pattern <= 0 {
				continue
			}
			idx := uint8(c.Ink[row][col])
			baseX, baseY := col*cellW, row*cellH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&rune(pixelMap[dy][dx]) == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save encodes the recording to path.
func (r *gifRecorder) Save(path string) (err error) {
	if len(r.frames) == 0 {
		return errNothingRecorded
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return gif.EncodeAll(f, &anim)
}
