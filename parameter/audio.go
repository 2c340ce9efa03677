package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap between consecutive sounds
	MinSoundGap = 50 * time.Millisecond
)

// Error Sound, played on a rejected command
const (
	ErrorSoundFrequency = 110.0
	ErrorSoundDuration  = 80 * time.Millisecond
	ErrorSoundAttack    = 5 * time.Millisecond
	ErrorSoundRelease   = 20 * time.Millisecond
)

// Confirm Sound, played when a construction completes
const (
	ConfirmSoundFrequency = 880.0
	ConfirmSoundDuration  = 60 * time.Millisecond
	ConfirmSoundAttack    = 5 * time.Millisecond
	ConfirmSoundRelease   = 40 * time.Millisecond
)

// AudioVolume is the master gain applied to every effect
const AudioVolume = 0.3
