package component

type EnemyBehavior int

const (
	BehaviorNormal EnemyBehavior = iota
	BehaviorPatrol
)

type Formation int

const (
	FormationSingle Formation = iota
	FormationLine
	FormationVerticalPatrol
	FormationV
	FormationCluster
)

var formationNames = [...]string{"single", "line", "vertical_patrol", "v_formation", "cluster"}

func (f Formation) String() string {
	if int(f) < len(formationNames) {
		return formationNames[f]
	}
	return "unknown"
}

// Enemy bobs around BaseY. Patrol enemies swing by the patrol range instead of the bob amplitude.
type Enemy struct {
	Formation Formation
	Behavior  EnemyBehavior
	BaseY     float64
	BobPhase  float64
}

var EnemyComponent = NewComponent[Enemy]("enemy")
