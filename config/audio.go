package config

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate int

	// Slide smoothing. The ramp is a fixed step per tick, so the audible
	// fade time depends on the tick rate (60 ticks/s gives ~0.28s full scale).
	SlideRampStep   float64
	SlideStopVolume float64

	// Base voice settings, the equivalent of an audio source's volume/pitch.
	ImpactBaseVolume float64
	ImpactBasePitch  float64
	SlideBaseVolume  float64
	SlideBasePitch   float64

	ResampleQuality int
}

var Audio AudioConfig

func init() {
	Audio = AudioConfig{
		SampleRate:       44100,
		SlideRampStep:    0.06,
		SlideStopVolume:  0.01,
		ImpactBaseVolume: 1.0,
		ImpactBasePitch:  1.0,
		SlideBaseVolume:  1.0,
		SlideBasePitch:   1.0,
		ResampleQuality:  4,
	}
}
