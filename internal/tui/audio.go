/*
Package tui
File: audio.go
Description: Short sine chimes for action results. Audio is optional; a
missing sound device only disables it.
*/

package tui

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Chime frequencies.
const (
	ToneSuccess = 880.0
	ToneUpgrade = 1320.0
	ToneDenied  = 220.0
)

// Audio plays chimes through the default speaker.
type Audio struct {
	enabled bool
}

// NewAudio initializes the speaker when enabled is true.
func NewAudio(enabled bool) *Audio {
	if !enabled {
		return &Audio{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio disabled: %v", err)
		return &Audio{}
	}
	return &Audio{enabled: true}
}

// Enabled reports whether chimes are audible.
func (a *Audio) Enabled() bool { return a != nil && a.enabled }

// Chime plays a tone of freq Hz for d.
func (a *Audio) Chime(freq float64, d time.Duration) {
	if !a.Enabled() {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// Close releases the speaker.
func (a *Audio) Close() {
	if a.Enabled() {
		speaker.Close()
		a.enabled = false
	}
}
