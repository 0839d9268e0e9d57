package component

type PowerUpKind int

const (
	PowerUpHat PowerUpKind = iota
	PowerUpMagnet
)

func (k PowerUpKind) String() string {
	if k == PowerUpMagnet {
		return "magnet"
	}
	return "hat"
}

// PowerUp is a collectible buff. Collected flips once and the entity is destroyed in the same call.
type PowerUp struct {
	Kind      PowerUpKind
	Collected bool
}

var PowerUpComponent = NewComponent[PowerUp]("power_up")
