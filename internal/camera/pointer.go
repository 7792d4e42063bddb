package camera

// Pointer is a pointer position normalized to [-1, 1] on each axis, with
// +Y up. The zero value is the centered pointer used after it leaves the
// surface.
type Pointer struct {
	X, Y float64
}

// PointerFromPixels normalizes a pixel position on a width x height surface.
func PointerFromPixels(px, py float64, width, height int) Pointer {
	if width <= 0 || height <= 0 {
		return Pointer{}
	}
	return Pointer{
		X: px/float64(width)*2 - 1,
		Y: -(py/float64(height))*2 + 1,
	}.Clamp()
}

func (p Pointer) Clamp() Pointer {
	return Pointer{X: clamp(p.X), Y: clamp(p.Y)}
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
