package component

type ColliderShape int

const (
	ColliderCircle ColliderShape = iota
	ColliderBox
	// ColliderGapPair is two boxes above and below an ObstaclePair gap.
	ColliderGapPair
)

// Collider describes the overlap shape the physics collaborator builds for an entity.
type Collider struct {
	Shape  ColliderShape
	Radius float64
	Width  float64
	Height float64
}

var ColliderComponent = NewComponent[Collider]("collider")
