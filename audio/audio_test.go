package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"
)

const testRate = beep.SampleRate(44100)

// drain streams s to exhaustion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Streamer never finished")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, testRate)
		n, peak := drain(t, osc)
		if n != testRate.N(100*time.Millisecond) {
			t.Errorf("Wave %d: expected %d samples, got %d", wave, testRate.N(100*time.Millisecond), n)
		}
		if peak > 1.0 || peak == 0 {
			t.Errorf("Wave %d: unexpected peak %f", wave, peak)
		}
	}
}

func TestSquareWaveValues(t *testing.T) {
	osc := NewOscillator(float64(testRate)/4, time.Second, WaveSquare, testRate)
	buf := make([][2]float64, 4)
	osc.Stream(buf)
	want := []float64{1, 1, -1, -1}
	for i, v := range want {
		if buf[i][0] != v || buf[i][1] != v {
			t.Errorf("Sample %d: expected %v, got %v", i, v, buf[i])
		}
	}
}

func TestEnvelopeFades(t *testing.T) {
	d := 20 * time.Millisecond
	osc := NewOscillator(float64(testRate)/4, d, WaveSquare, testRate)
	env := NewEnvelope(osc, d, 5*time.Millisecond, 5*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("Expected %d samples, got %d", len(buf), n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	mid := len(buf) / 2
	if math.Abs(buf[mid][0]) != 1 {
		t.Errorf("Expected full volume in sustain, got %f", buf[mid][0])
	}
	if last := math.Abs(buf[n-1][0]); last > 0.01 {
		t.Errorf("Expected faded last sample, got %f", last)
	}
}

func TestStatsNotes(t *testing.T) {
	tests := []struct {
		stats Stats
		want  int
	}{
		{Stats{Rooms: 0, Reached: 0}, 1},
		{Stats{Rooms: 100, Reached: 0}, 1},
		{Stats{Rooms: 100, Reached: 30}, 1},
		{Stats{Rooms: 100, Reached: 50}, 2},
		{Stats{Rooms: 100, Reached: 99}, 3},
		{Stats{Rooms: 100, Reached: 100}, 4},
		{Stats{Rooms: 4, Reached: 9}, 4},
	}
	for _, tt := range tests {
		if got := tt.stats.Notes(); got != tt.want {
			t.Errorf("Notes(%+v): expected %d, got %d", tt.stats, tt.want, got)
		}
	}
}

func TestChimeLength(t *testing.T) {
	note := testRate.N(NoteDuration)
	for _, s := range []Stats{{Rooms: 4, Reached: 1}, {Rooms: 4, Reached: 4}} {
		n, peak := drain(t, Chime(s, testRate))
		if n != s.Notes()*note {
			t.Errorf("Chime %+v: expected %d samples, got %d", s, s.Notes()*note, n)
		}
		if peak > chimeVolume+1e-9 {
			t.Errorf("Chime %+v: peak %f exceeds volume", s, peak)
		}
	}
}

func TestPlayerDisabledOnInitFailure(t *testing.T) {
	inits := 0
	p := NewPlayer()
	p.initSpeaker = func(beep.SampleRate, int) error {
		inits++
		return errors.New("no audio device")
	}
	p.play = func(...beep.Streamer) { t.Error("play called on disabled player") }

	for i := 0; i < 2; i++ {
		select {
		case <-p.Play(Chime(Stats{}, p.Rate())):
		default:
			t.Error("Expected closed channel from disabled player")
		}
	}
	if inits != 1 {
		t.Errorf("Expected one init attempt, got %d", inits)
	}
}

func TestPlayerSignalsCompletion(t *testing.T) {
	inits := 0
	p := NewPlayer()
	p.initSpeaker = func(beep.SampleRate, int) error {
		inits++
		return nil
	}
	p.play = func(s ...beep.Streamer) {
		for _, st := range s {
			drain(t, st)
		}
	}

	p.PlayAndWait(Chime(Stats{Rooms: 2, Reached: 2}, p.Rate()), time.Second)
	select {
	case <-p.Play(NewOscillator(440, time.Millisecond, WaveSine, p.Rate())):
	case <-time.After(time.Second):
		t.Error("Expected completion signal")
	}
	if inits != 1 {
		t.Errorf("Expected one init, got %d", inits)
	}
}
