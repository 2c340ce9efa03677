package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-sketch/parameter"
)

func drain(s beep.Streamer) (samples [][2]float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		samples = append(samples, buf[:n]...)
		if !ok || n == 0 {
			return samples
		}
	}
}

func TestOscillatorLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 10*time.Millisecond, wave, rate)
		out := drain(osc)
		if len(out) != rate.N(10*time.Millisecond) {
			t.Errorf("wave %d produced %d samples, want %d", wave, len(out), rate.N(10*time.Millisecond))
		}
		for i, s := range out {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d sample %d = %v", wave, i, s)
			}
		}
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate)
	out := drain(NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate))

	if len(out) != 100 {
		t.Fatalf("got %d samples, want 100", len(out))
	}
	if out[0][0] != 0 {
		t.Errorf("attack starts at %v, want 0", out[0][0])
	}
	if out[50][0] != 1 {
		t.Errorf("sustain = %v, want 1", out[50][0])
	}
	if last := out[99][0]; last <= 0 || last > 0.1 {
		t.Errorf("release tail = %v", last)
	}
}

func TestFeedbackSoundsFinite(t *testing.T) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	tests := []struct {
		name   string
		create func(beep.SampleRate, float64) beep.Streamer
		dur    time.Duration
	}{
		{"error", CreateErrorSound, parameter.ErrorSoundDuration},
		{"confirm", CreateConfirmSound, parameter.ConfirmSoundDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := drain(tt.create(rate, 0.5))
			if len(out) == 0 || len(out) > rate.N(tt.dur) {
				t.Errorf("length = %d, want at most %d", len(out), rate.N(tt.dur))
			}
			peak := 0.0
			for _, s := range out {
				peak = math.Max(peak, math.Abs(s[0]))
			}
			if peak == 0 || peak > 0.5+1e-9 {
				t.Errorf("peak = %v, want (0, 0.5]", peak)
			}
		})
	}
}

func TestSoundManagerSilentWithoutSpeaker(t *testing.T) {
	sm := NewSoundManager()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("uninitialized manager panicked: %v", r)
		}
	}()
	sm.PlayError()
	sm.PlayConfirm()
	sm.Cleanup()
}

func TestSoundManagerGap(t *testing.T) {
	sm := NewSoundManager()
	clock := time.Unix(0, 0)
	sm.now = func() time.Time { return clock }

	if !sm.ready() {
		t.Fatal("first effect throttled")
	}
	clock = clock.Add(parameter.MinSoundGap / 2)
	if sm.ready() {
		t.Error("effect inside the gap was allowed")
	}
	clock = clock.Add(parameter.MinSoundGap)
	if !sm.ready() {
		t.Error("effect after the gap was throttled")
	}
}

func TestSoundManagerToggleMute(t *testing.T) {
	sm := NewSoundManager()
	if !sm.ToggleMute() {
		t.Error("first toggle should mute")
	}
	if sm.ToggleMute() {
		t.Error("second toggle should unmute")
	}
}
