package main

import "math"

const (
	defaultFieldWidth  = 144.0
	defaultFieldHeight = 144.0
)

// Translator maps between viewport pixels and field units. The field origin
// sits at the viewport center and field Y grows upward.
type Translator struct {
	width         float64
	height        float64
	desiredWidth  float64
	desiredHeight float64
}

type TranslatorOption func(*Translator)

// WithFieldSize sets the logical field size in field units.
func WithFieldSize(width, height float64) TranslatorOption {
	return func(t *Translator) {
		if width > 0 {
			t.desiredWidth = width
		}
		if height > 0 {
			t.desiredHeight = height
		}
	}
}

func NewTranslator(width, height float64, opts ...TranslatorOption) *Translator {
	t := &Translator{
		width:         width,
		height:        height,
		desiredWidth:  defaultFieldWidth,
		desiredHeight: defaultFieldHeight,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resize updates the viewport dimensions. Field size is unchanged.
func (t *Translator) Resize(width, height float64) {
	t.width = width
	t.height = height
}

func (t *Translator) Viewport() (float64, float64) {
	return t.width, t.height
}

func (t *Translator) FieldSize() (float64, float64) {
	return t.desiredWidth, t.desiredHeight
}

func (t *Translator) scale() (float64, float64) {
	return t.width / t.desiredWidth, t.height / t.desiredHeight
}

func (t *Translator) FromFieldCoords(x, y float64) (float64, float64) {
	scaleX, scaleY := t.scale()
	px := (x + 0.5*t.desiredWidth) * scaleX
	py := (0.5*t.desiredHeight - y) * scaleY
	return px, py
}

// ToFieldCoords is the inverse of FromFieldCoords, rounded to two decimals.
// A zero-sized viewport maps everything to the origin.
func (t *Translator) ToFieldCoords(px, py float64) (float64, float64) {
	scaleX, scaleY := t.scale()
	if scaleX == 0 || scaleY == 0 {
		return 0, 0
	}
	x := px/scaleX - 0.5*t.desiredWidth
	y := 0.5*t.desiredHeight - py/scaleY
	return round2(x), round2(y)
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
