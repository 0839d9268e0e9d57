package component

// PlayerState is mutated by collision handlers through its methods and by the
// power-up controller (PowerUpStacks, HasMagnet). Death is terminal for the run.
type PlayerState struct {
	Health         int
	MaxHealth      int
	IsInvulnerable bool
	IsDead         bool
	PowerUpStacks  int
	HasMagnet      bool

	InvulnerableMs float64
	invulnerable   Timer
}

func NewPlayerState(maxHealth int, invulnerableMs float64) PlayerState {
	return PlayerState{
		Health:         maxHealth,
		MaxHealth:      maxHealth,
		InvulnerableMs: invulnerableMs,
	}
}

// TakeDamage applies damage unless the player is dead or in post-hit
// invulnerability. Surviving a hit grants a short invulnerability window.
func (p *PlayerState) TakeDamage(amount int) bool {
	if p == nil || p.IsDead || p.IsInvulnerable || amount <= 0 {
		return false
	}
	p.Health -= amount
	if p.Health <= 0 {
		p.Health = 0
		p.IsDead = true
		return true
	}
	if p.InvulnerableMs > 0 {
		p.IsInvulnerable = true
		p.invulnerable.Start(p.InvulnerableMs)
	}
	return true
}

// Kill ends the run regardless of health. Returns false if already dead.
func (p *PlayerState) Kill() bool {
	if p == nil || p.IsDead {
		return false
	}
	p.Health = 0
	p.IsDead = true
	return true
}

// Tick advances the post-hit invulnerability window.
func (p *PlayerState) Tick(dtMs float64) {
	if p == nil {
		return
	}
	if p.invulnerable.Tick(dtMs) {
		p.IsInvulnerable = false
	}
}

var PlayerComponent = NewComponent[PlayerState]("player")
