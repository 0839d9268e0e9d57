package component

// BossState is the observable state of one encounter. The boss package owns
// all transitions; presentation reads it.
type BossState struct {
	Name             string
	Health           int
	MaxHealth        int
	Phase            int
	IsInvulnerable   bool
	IsTransitioning  bool
	Defeated         bool
	Removed          bool
	Flashing         bool
	LastAttackTime   float64
	AttackCooldownMs float64
	MoveDirection    float64
	MoveSpeed        float64
	MoveRange        float64
	BaseY            float64
	Width            float64
	Height           float64
}

var BossComponent = NewComponent[BossState]("boss")
