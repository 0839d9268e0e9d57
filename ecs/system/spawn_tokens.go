package system

import (
	"math"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/ecs/entity"
)

var clusterTokenOffsets = [][2]float64{{0, 0}, {25, -25}, {25, 25}, {50, 0}}

// placeTokens lays out one token pattern inside the gap at x.
func (s *SpawnScheduler) placeTokens(w *ecs.World, pattern component.TokenPattern, x, gapTop, gapSize, speed float64) (int, error) {
	ts := s.spec.Tokens
	center := gapTop + gapSize/2
	placed := 0
	put := func(tx, ty float64, highValue bool, osc *component.Oscillator) error {
		_, err := entity.NewToken(w, entity.TokenParams{
			X:          tx,
			Y:          ty,
			Radius:     ts.Radius,
			Speed:      speed,
			Kind:       s.rollTokenKind(highValue),
			HighValue:  highValue,
			Pattern:    pattern,
			Oscillator: osc,
		})
		if err == nil {
			placed++
		}
		return err
	}

	switch pattern {
	case component.PatternSafeCenter:
		return placed, put(x, center, s.rollHighValue(), nil)

	case component.PatternRiskyEdge:
		y := gapTop + ts.EdgeOffset
		if s.rng.Intn(2) == 1 {
			y = gapTop + gapSize - ts.EdgeOffset
		}
		if s.rng.Float64() < ts.RiskyPairChance {
			if err := put(x, y, true, nil); err != nil {
				return placed, err
			}
			return placed, put(x+ts.RiskyPairSpacing, y, true, nil)
		}
		return placed, put(x, y, s.rollHighValue(), nil)

	case component.PatternTrail:
		n := 3 + s.rng.Intn(2)
		for i := 0; i < n; i++ {
			frac := 0.2 + 0.6*float64(i)/float64(n-1)
			y := gapTop + gapSize*frac + math.Sin(float64(i))*ts.WiggleAmplitude
			y = clamp(y, gapTop+ts.Radius, gapTop+gapSize-ts.Radius)
			if err := put(x+float64(i)*ts.TrailSpacing, y, s.rollHighValue(), nil); err != nil {
				return placed, err
			}
		}
		return placed, nil

	case component.PatternCluster:
		n := 3 + s.rng.Intn(2)
		for _, off := range clusterTokenOffsets[:n] {
			if err := put(x+off[0], center+off[1], s.rollHighValue(), nil); err != nil {
				return placed, err
			}
		}
		return placed, nil

	case component.PatternOscillating:
		top := gapTop + ts.OscillationInset
		osc := &component.Oscillator{
			BaseY:     (center + top) / 2,
			Amplitude: (center - top) / 2,
			PeriodMs:  ts.OscillationPeriodMs,
		}
		return placed, put(x, osc.BaseY, s.rollHighValue(), osc)
	}
	return placed, nil
}

func (s *SpawnScheduler) rollHighValue() bool {
	return s.rng.Float64() < s.spec.Tokens.HighValueChance
}

// rollTokenKind doubles the rare chance for high value tokens.
func (s *SpawnScheduler) rollTokenKind(highValue bool) component.TokenKind {
	chance := s.spec.Tokens.RareChance
	if highValue {
		chance *= 2
	}
	if s.rng.Float64() < chance {
		return component.TokenRare
	}
	return component.TokenCommon
}
