package component

// Scroll marks an entity that travels left with the stage. Its horizontal
// velocity is rewritten whenever the scroll speed changes.
type Scroll struct {
	Factor float64
}

var ScrollComponent = NewComponent[Scroll]("scroll")
