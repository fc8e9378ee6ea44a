package metrics

import (
	"strings"

	"grasplab/internal/engine"
)

// ContactTime measures the fraction of steps in which at least one finger
// pad touches the box.
type ContactTime struct {
	name    string
	src     engine.ContactSource
	touched int
	samples int
}

func NewContactTime(src engine.ContactSource) *ContactTime {
	return &ContactTime{name: "contact_time", src: src}
}

func (c *ContactTime) Name() string { return c.name }

func (c *ContactTime) Observe(x engine.State, u engine.Control, t float64) {
	c.samples++
	for _, contact := range c.src.Contacts(x) {
		if strings.Contains(contact.Geom1, "finger") || strings.Contains(contact.Geom2, "finger") {
			c.touched++
			return
		}
	}
}

func (c *ContactTime) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.touched) / float64(c.samples)
}

func (c *ContactTime) Reset() {
	c.touched = 0
	c.samples = 0
}
