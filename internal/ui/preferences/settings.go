package preferences

import (
	"time"

	"loook/internal/core/model"
)

// Interval bounds per reminder kind. User input and loaded files are
// clamped into these ranges before they reach the coordinator.
const (
	BlinkIntervalMin = 15 * time.Second
	BlinkIntervalMax = 600 * time.Second

	FocusIntervalMin = 300 * time.Second
	FocusIntervalMax = 1800 * time.Second
)

// Settings defines editable user preferences.
type Settings struct {
	BlinkInterval    time.Duration
	BlinkEnabled     bool
	PostureInterval  time.Duration
	PostureEnabled   bool
	LookAwayInterval time.Duration
	LookAwayEnabled  bool

	GlobalEnabled bool
	IdleEnabled   bool
	LaunchAtLogin bool
}

// DefaultSettings returns default settings for Loook.
func DefaultSettings() Settings {
	return Settings{
		BlinkInterval:    60 * time.Second,
		BlinkEnabled:     true,
		PostureInterval:  600 * time.Second,
		PostureEnabled:   true,
		LookAwayInterval: 1200 * time.Second,
		LookAwayEnabled:  true,
		GlobalEnabled:    true,
		IdleEnabled:      true,
		LaunchAtLogin:    false,
	}
}

// ClampInterval forces an interval into the legal range for a kind.
func ClampInterval(kind model.Kind, interval time.Duration) time.Duration {
	min, max := FocusIntervalMin, FocusIntervalMax
	if kind == model.KindBlink {
		min, max = BlinkIntervalMin, BlinkIntervalMax
	}
	if interval < min {
		return min
	}
	if interval > max {
		return max
	}
	return interval
}

// Clamped returns a copy with every interval forced into range.
func (settings Settings) Clamped() Settings {
	settings.BlinkInterval = ClampInterval(model.KindBlink, settings.BlinkInterval)
	settings.PostureInterval = ClampInterval(model.KindPosture, settings.PostureInterval)
	settings.LookAwayInterval = ClampInterval(model.KindLookAway, settings.LookAwayInterval)
	return settings
}

// CoordinatorConfig converts settings to CoordinatorConfig.
func (settings Settings) CoordinatorConfig() model.CoordinatorConfig {
	return model.CoordinatorConfig{
		Blink: model.ReminderConfig{
			Interval: settings.BlinkInterval,
			Enabled:  settings.BlinkEnabled,
		},
		Posture: model.ReminderConfig{
			Interval: settings.PostureInterval,
			Enabled:  settings.PostureEnabled,
		},
		LookAway: model.ReminderConfig{
			Interval: settings.LookAwayInterval,
			Enabled:  settings.LookAwayEnabled,
		},
		GlobalEnabled:     settings.GlobalEnabled,
		IdleResetEnabled:  settings.IdleEnabled,
		IdleResetAfter:    5 * time.Minute,
		IdleCheckInterval: 5 * time.Second,
	}
}
