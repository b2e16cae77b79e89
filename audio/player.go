package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate the speaker is opened at
const SampleRate = beep.SampleRate(48000)

// Player opens the speaker on first use. Audio failures are logged and never fatal.
type Player struct {
	mu          sync.Mutex
	initialized bool
	disabled    bool

	rate beep.SampleRate
	// Swappable for tests
	initSpeaker func(beep.SampleRate, int) error
	play        func(...beep.Streamer)
}

// NewPlayer returns a player backed by the system speaker
func NewPlayer() *Player {
	return &Player{
		rate:        SampleRate,
		initSpeaker: speaker.Init,
		play:        speaker.Play,
	}
}

// Rate returns the player's sample rate
func (p *Player) Rate() beep.SampleRate {
	return p.rate
}

func (p *Player) ensureInit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disabled {
		return false
	}
	if !p.initialized {
		if err := p.initSpeaker(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
			log.Printf("Audio disabled: %v", err)
			p.disabled = true
			return false
		}
		p.initialized = true
	}
	return true
}

// Play starts s and returns a channel closed when it finishes. When audio is
// unavailable the returned channel is already closed.
func (p *Player) Play(s beep.Streamer) <-chan struct{} {
	done := make(chan struct{})
	if !p.ensureInit() {
		close(done)
		return done
	}
	p.play(beep.Seq(s, beep.Callback(func() { close(done) })))
	return done
}

// PlayAndWait plays s and blocks until it ends or timeout passes
func (p *Player) PlayAndWait(s beep.Streamer, timeout time.Duration) {
	select {
	case <-p.Play(s):
	case <-time.After(timeout):
		log.Printf("Audio playback timed out after %v", timeout)
	}
}
