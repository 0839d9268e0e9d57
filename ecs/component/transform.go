package component

// Transform is the world-space center of an entity in pixels.
type Transform struct {
	X float64
	Y float64
}

// Velocity is in pixels per second.
type Velocity struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]("transform")
var VelocityComponent = NewComponent[Velocity]("velocity")
