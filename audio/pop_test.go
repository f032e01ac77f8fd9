package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/meldworks/meldboard/constants"
)

// TestPopGeneratorLength verifies the pop ends after its total duration
func TestPopGeneratorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	gen := NewPopGenerator(rate)

	want := rate.N(constants.PopTotalDuration)
	got := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := gen.Stream(buf)
		got += n
		if !ok {
			break
		}
	}

	if got != want {
		t.Errorf("Expected %d samples, got %d", want, got)
	}

	// A finished streamer stays finished
	if n, ok := gen.Stream(buf); n != 0 || ok {
		t.Errorf("Expected drained streamer, got n=%d ok=%v", n, ok)
	}
}

// TestPopGeneratorAmplitude verifies samples stay inside the gain bound
func TestPopGeneratorAmplitude(t *testing.T) {
	rate := beep.SampleRate(44100)
	gen := NewPopGenerator(rate)

	buf := make([][2]float64, 1024)
	for {
		n, ok := gen.Stream(buf)
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > popStartGain || math.Abs(buf[i][1]) > popStartGain {
				t.Fatalf("Sample %d exceeds start gain: %f", i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("Sample %d not mono-duplicated: %f vs %f", i, buf[i][0], buf[i][1])
			}
		}
		if !ok {
			break
		}
	}

	if gen.Err() != nil {
		t.Errorf("Expected no error, got: %v", gen.Err())
	}
}

// TestPopGeneratorDecays verifies the envelope falls off over the tail
func TestPopGeneratorDecays(t *testing.T) {
	rate := beep.SampleRate(44100)
	gen := NewPopGenerator(rate)

	total := rate.N(constants.PopTotalDuration)
	all := make([][2]float64, total)
	for off := 0; off < total; {
		n, ok := gen.Stream(all[off:])
		off += n
		if !ok {
			break
		}
	}

	peak := func(lo, hi int) float64 {
		max := 0.0
		for i := lo; i < hi; i++ {
			if v := math.Abs(all[i][0]); v > max {
				max = v
			}
		}
		return max
	}

	head := peak(0, total/4)
	tail := peak(total-total/4, total)
	if tail >= head/4 {
		t.Errorf("Expected tail well below head amplitude: head=%f tail=%f", head, tail)
	}
}

// TestSoundManagerPopWithoutInit verifies Pop is safe on a silent manager
func TestSoundManagerPopWithoutInit(t *testing.T) {
	sm := NewSoundManager()
	sm.Pop() // Must not panic or touch the speaker
	sm.Cleanup()
}
