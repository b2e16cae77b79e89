package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Timing of one chime note
const (
	NoteDuration = 90 * time.Millisecond
	noteAttack   = 5 * time.Millisecond
	noteRelease  = 40 * time.Millisecond
	chimeVolume  = 0.5
)

// C major arpeggio, C5 to C6
var chimeNotes = [4]float64{523.25, 659.25, 783.99, 1046.50}

// Stats summarizes a finished carve for the chime
type Stats struct {
	Rooms   int
	Reached int
}

// Notes returns how many notes the chime plays: one per quarter of the rooms reached, at least one
func (s Stats) Notes() int {
	if s.Rooms <= 0 {
		return 1
	}
	n := s.Reached * len(chimeNotes) / s.Rooms
	return max(1, min(n, len(chimeNotes)))
}

// Chime returns a rising arpeggio; a fully connected maze plays all four notes
func Chime(s Stats, rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, freq := range chimeNotes[:s.Notes()] {
		osc := NewOscillator(freq, NoteDuration, WaveSine, rate)
		notes = append(notes, NewEnvelope(osc, NoteDuration, noteAttack, noteRelease, rate))
	}
	return newVolume(beep.Seq(notes...), chimeVolume)
}
