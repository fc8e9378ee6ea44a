package metrics

import "grasplab/internal/engine"

// HeightSource exposes the box and support-surface heights of a model.
type HeightSource interface {
	BoxHeight(x engine.State) float64
	TableTop() float64
}

// LiftHeight tracks the peak box height above the table surface.
type LiftHeight struct {
	name   string
	src    HeightSource
	peak   float64
	sample bool
}

func NewLiftHeight(src HeightSource) *LiftHeight {
	return &LiftHeight{name: "lift_height", src: src}
}

func (l *LiftHeight) Name() string { return l.name }

func (l *LiftHeight) Observe(x engine.State, u engine.Control, t float64) {
	h := l.src.BoxHeight(x) - l.src.TableTop()
	if !l.sample || h > l.peak {
		l.peak = h
		l.sample = true
	}
}

func (l *LiftHeight) Value() float64 {
	return l.peak
}

func (l *LiftHeight) Reset() {
	l.peak = 0
	l.sample = false
}
