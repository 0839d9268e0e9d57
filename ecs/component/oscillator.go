package component

// Oscillator drives Transform.Y as BaseY + Amplitude*sin(Phase).
type Oscillator struct {
	BaseY     float64
	Amplitude float64
	PeriodMs  float64
	Phase     float64
}

var OscillatorComponent = NewComponent[Oscillator]("oscillator")
