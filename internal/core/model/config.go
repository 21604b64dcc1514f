package model

import "time"

// Kind identifies a reminder category.
type Kind string

const (
	KindBlink    Kind = "blink"
	KindPosture  Kind = "posture"
	KindLookAway Kind = "look_away"
)

// Kinds lists all reminder kinds in scheduling priority order. When
// several fire on the same tick, the earliest kind in this list takes
// the screen and the rest queue behind it.
var Kinds = []Kind{KindLookAway, KindPosture, KindBlink}

// LookAwayCountdownSeconds is the length of the look-away focus countdown.
const LookAwayCountdownSeconds = 20

// ReminderConfig defines one recurring reminder schedule.
type ReminderConfig struct {
	Interval time.Duration
	Enabled  bool
}

// CoordinatorConfig contains runtime settings for the reminder coordinator.
type CoordinatorConfig struct {
	Blink    ReminderConfig
	Posture  ReminderConfig
	LookAway ReminderConfig

	GlobalEnabled bool

	IdleResetEnabled  bool
	IdleResetAfter    time.Duration
	IdleCheckInterval time.Duration
}

// Reminder returns the schedule for the given kind.
func (config CoordinatorConfig) Reminder(kind Kind) ReminderConfig {
	switch kind {
	case KindPosture:
		return config.Posture
	case KindLookAway:
		return config.LookAway
	default:
		return config.Blink
	}
}

// SetReminder replaces the schedule for the given kind.
func (config *CoordinatorConfig) SetReminder(kind Kind, reminder ReminderConfig) {
	switch kind {
	case KindPosture:
		config.Posture = reminder
	case KindLookAway:
		config.LookAway = reminder
	default:
		config.Blink = reminder
	}
}

// DisplayDuration returns how long a reminder stays on screen before
// auto-dismissal. The look-away card lives for the whole countdown.
func DisplayDuration(kind Kind) time.Duration {
	switch kind {
	case KindPosture:
		return 3 * time.Second
	case KindLookAway:
		return LookAwayCountdownSeconds * time.Second
	default:
		return 2 * time.Second
	}
}
