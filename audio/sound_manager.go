// Package audio plays short feedback sounds for command outcomes.
// Audio is optional: every call is a no-op until Initialize succeeds.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-sketch/parameter"
)

// SoundManager mixes feedback effects onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	lastPlay    time.Time

	// now is replaced in tests
	now func() time.Time
}

// NewSoundManager creates an uninitialized manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: parameter.AudioVolume,
		mixer:  &beep.Mixer{},
		now:    time.Now,
	}
}

// Initialize opens the speaker; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything queued
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// ToggleMute flips muting and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// PlayError plays the rejection buzz
func (sm *SoundManager) PlayError() {
	sm.play(CreateErrorSound)
}

// PlayConfirm plays the construction tick
func (sm *SoundManager) PlayConfirm() {
	sm.play(CreateConfirmSound)
}

func (sm *SoundManager) play(create func(beep.SampleRate, float64) beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || !sm.ready() {
		return
	}
	s := create(sm.rate, sm.volume)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ready enforces the minimum gap between effects
func (sm *SoundManager) ready() bool {
	now := sm.now()
	if !sm.lastPlay.IsZero() && now.Sub(sm.lastPlay) < parameter.MinSoundGap {
		return false
	}
	sm.lastPlay = now
	return true
}
