package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/meldworks/meldboard/constants"
)

const (
	popStartFreq = 420.0
	popEndFreq   = 880.0
	popStartGain = 0.15
	popFloorGain = 0.0001
)

// popGenerator produces the pop effect: a triangle wave sweeping up in
// pitch over the sweep window while the gain decays exponentially to the
// floor across the total duration.
type popGenerator struct {
	rate         beep.SampleRate
	phase        float64
	position     int
	sweepSamples int
	totalSamples int
	decayPerStep float64
	gain         float64
}

// NewPopGenerator creates a finite streamer for one pop
func NewPopGenerator(rate beep.SampleRate) beep.Streamer {
	total := rate.N(constants.PopTotalDuration)
	g := &popGenerator{
		rate:         rate,
		sweepSamples: rate.N(constants.PopSweepDuration),
		totalSamples: total,
		gain:         popStartGain,
	}
	// gain * decay^total == floor
	g.decayPerStep = math.Pow(popFloorGain/popStartGain, 1.0/float64(total))
	return g
}

func (g *popGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.position >= g.totalSamples {
			return i, false
		}

		freq := popEndFreq
		if g.position < g.sweepSamples {
			progress := float64(g.position) / float64(g.sweepSamples)
			freq = popStartFreq + (popEndFreq-popStartFreq)*progress
		}

		// Triangle wave from the running phase
		val := 4.0*math.Abs(g.phase-0.5) - 1.0
		val *= g.gain

		samples[i][0] = val
		samples[i][1] = val

		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.gain *= g.decayPerStep
		g.position++
	}
	return len(samples), true
}

func (g *popGenerator) Err() error { return nil }
