package system

import (
	"math"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/tuning"
)

// PowerUpController owns the hat stack and the magnet. Both are time boxed:
// the hat has one timer shared by all stacks, reset on every pickup.
type PowerUpController struct {
	spec   tuning.PowerUpSpec
	events *event.Queue
	player *component.PlayerState

	stacks int
	hat    component.Timer
	magnet component.Timer

	// OnChange runs in the tick a multiplier changes so speeds can be
	// reapplied before anything else moves.
	OnChange func(w *ecs.World)
}

func NewPowerUpController(spec tuning.PowerUpSpec, events *event.Queue) *PowerUpController {
	if spec.MaxStacks < 1 {
		spec.MaxStacks = 3
	}
	return &PowerUpController{spec: spec, events: events}
}

// Bind mirrors stack and magnet state onto the player record.
func (c *PowerUpController) Bind(player *component.PlayerState) {
	c.player = player
	c.sync()
}

// CollectHat adds a stack and restarts the hat timer. At max stacks the
// stack count is unchanged but the timer still restarts; it returns whether
// the stack grew.
func (c *PowerUpController) CollectHat() bool {
	c.hat.Start(c.spec.HatDurationMs)
	if c.stacks >= c.spec.MaxStacks {
		c.events.Emit(event.HatMaxed, c.stacks)
		c.sync()
		return false
	}
	c.stacks++
	c.events.Emit(event.HatActivated, c.stacks)
	c.sync()
	return true
}

func (c *PowerUpController) CollectMagnet() {
	c.magnet.Start(c.spec.MagnetDurationMs)
	c.events.Emit(event.MagnetActivated, int(c.spec.MagnetDurationMs))
	c.sync()
}

func (c *PowerUpController) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}
	dt := w.Dt()
	changed := false

	if c.hat.Tick(dt) {
		c.stacks = 0
		revertObstacleColors(w)
		c.events.Emit(event.HatExpired, 0)
		changed = true
	}
	if c.magnet.Tick(dt) {
		releaseTokens(w)
		c.events.Emit(event.MagnetExpired, 0)
		changed = true
	}
	if !changed {
		return
	}
	c.sync()
	if c.OnChange != nil {
		c.OnChange(w)
	}
}

// Reset drops every buff without emitting expiry events. Used between runs.
func (c *PowerUpController) Reset() {
	c.stacks = 0
	c.hat.Stop()
	c.magnet.Stop()
	c.sync()
}

func (c *PowerUpController) sync() {
	if c.player == nil {
		return
	}
	c.player.PowerUpStacks = c.stacks
	c.player.HasMagnet = c.magnet.Running()
}

func (c *PowerUpController) Stacks() int {
	if c == nil {
		return 0
	}
	return c.stacks
}

func (c *PowerUpController) HatActive() bool {
	return c != nil && c.stacks > 0
}

func (c *PowerUpController) MagnetActive() bool {
	return c != nil && c.magnet.Running()
}

func (c *PowerUpController) HatRemaining() float64 {
	return c.hat.Remaining()
}

func (c *PowerUpController) MagnetRemaining() float64 {
	return c.magnet.Remaining()
}

// SpeedMultiplier is 1 without the hat, else base + perStack*stacks.
func (c *PowerUpController) SpeedMultiplier() float64 {
	if !c.HatActive() {
		return 1
	}
	return c.spec.SpeedBase + c.spec.SpeedPerStack*float64(c.stacks)
}

// IntervalMultiplier is 1 without the hat, else base - perStack*stacks with a floor.
func (c *PowerUpController) IntervalMultiplier() float64 {
	if !c.HatActive() {
		return 1
	}
	return math.Max(c.spec.IntervalFloor, c.spec.IntervalBase-c.spec.IntervalPerStack*float64(c.stacks))
}

func revertObstacleColors(w *ecs.World) {
	ecs.ForEach(w, component.ObstacleComponent, func(_ ecs.Entity, o *component.ObstaclePair) {
		o.Color = component.ColorNormal
	})
}

// releaseTokens hands magnetized tokens back to the scroll; OnChange then
// restores their horizontal speed.
func releaseTokens(w *ecs.World) {
	ecs.ForEach2(w, component.TokenComponent, component.VelocityComponent, func(_ ecs.Entity, t *component.Token, v *component.Velocity) {
		if !t.Magnetized {
			return
		}
		t.Magnetized = false
		v.Y = 0
	})
}
