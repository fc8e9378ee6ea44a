// Package diag prints contact diagnostics during a run: every interval
// steps the active contact set is logged as geom pairs with friction and
// normal data.
package diag

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"grasplab/internal/control"
	"grasplab/internal/engine"
)

const DefaultInterval = 100

// NewLogger builds the console logger used by the CLI.
func NewLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// ContactPrinter is an engine.Observer that samples contacts every
// Interval steps. The floor's self-pair is skipped.
type ContactPrinter struct {
	Interval int
	src      engine.ContactSource
	logger   *zap.Logger
	sink     func(engine.Contact) // optional, for event capture
}

func NewContactPrinter(src engine.ContactSource, logger *zap.Logger, interval int) *ContactPrinter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ContactPrinter{
		Interval: interval,
		src:      src,
		logger:   logger,
	}
}

// OnContact registers a sink receiving every sampled contact, used to
// persist the contact event log.
func (p *ContactPrinter) OnContact(fn func(engine.Contact)) {
	p.sink = fn
}

func (p *ContactPrinter) OnStep(step int, x engine.State, u engine.Control, t float64) {
	if step%p.Interval != 0 {
		return
	}

	p.logger.Info("step", zap.Int("step", step), zap.Float64("t", t))

	for _, c := range p.src.Contacts(x) {
		if c.Geom1 == "floor" && c.Geom2 == "floor" {
			continue
		}
		p.logger.Info("contact",
			zap.String("geom1", c.Geom1),
			zap.String("geom2", c.Geom2),
			zap.Float64s("friction", c.Friction[:]),
			zap.Float64s("normal", c.Normal[:]),
			zap.Float64("depth", c.Depth),
			zap.Float64("force", c.Force),
		)
		if p.sink != nil {
			p.sink(c)
		}
	}
}

// LogPhaseChanges wires a grasp cycle's plan advances into the logger.
func LogPhaseChanges(g *control.GraspCycle, logger *zap.Logger) {
	g.OnPhaseChange(func(pc control.PhaseChange) {
		logger.Info("changing plan",
			zap.Int("step", pc.Step),
			zap.Int("phase", pc.Index),
			zap.Bool("gripper_low", pc.Phase.Low),
			zap.Bool("gripper_closed", pc.Phase.Closed),
		)
	})
}
