package component

type TokenKind int

const (
	TokenCommon TokenKind = iota
	TokenRare
)

func (k TokenKind) String() string {
	if k == TokenRare {
		return "rare"
	}
	return "common"
}

type TokenPattern int

const (
	PatternSafeCenter TokenPattern = iota
	PatternRiskyEdge
	PatternTrail
	PatternCluster
	PatternOscillating
)

var tokenPatternNames = [...]string{"safe_center", "risky_edge", "trail", "cluster", "oscillating"}

func (p TokenPattern) String() string {
	if int(p) < len(tokenPatternNames) {
		return tokenPatternNames[p]
	}
	return "unknown"
}

type Token struct {
	Kind      TokenKind
	HighValue bool
	Pattern   TokenPattern
	// Magnetized tokens are steered by the magnet and ignore scroll speed updates.
	Magnetized bool
}

var TokenComponent = NewComponent[Token]("token")
