package component

type PipeKind int

const (
	PipeCopper PipeKind = iota
	PipeJade
)

type ColorState int

const (
	ColorNormal ColorState = iota
	// ColorCycling is shown while the invincibility hat is active.
	ColorCycling
)

// ObstaclePair is a top and bottom pipe with a gap between them.
// GapBottom is always GapTop + gap size.
type ObstaclePair struct {
	GapTop             float64
	GapBottom          float64
	Width              float64
	Kind               PipeKind
	Color              ColorState
	Scored             bool
	NearMissRegistered bool
}

func (o *ObstaclePair) GapSize() float64 {
	return o.GapBottom - o.GapTop
}

func (o *ObstaclePair) GapCenter() float64 {
	return (o.GapTop + o.GapBottom) / 2
}

var ObstacleComponent = NewComponent[ObstaclePair]("obstacle")
