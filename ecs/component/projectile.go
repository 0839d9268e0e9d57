package component

type ProjectileOwner int

const (
	OwnerBoss ProjectileOwner = iota
	OwnerPlayer
)

type Projectile struct {
	Owner      ProjectileOwner
	Kind       string
	LifetimeMs float64
	Damage     int
	// Tint is 0xRRGGBB.
	Tint uint32
}

var ProjectileComponent = NewComponent[Projectile]("projectile")
