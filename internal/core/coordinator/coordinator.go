package coordinator

import (
	"errors"
	"sync"
	"time"

	"loook/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Config contains runtime options for the Coordinator.
type Config struct {
	TickInterval time.Duration
}

// Coordinator is the single source of truth for which reminder, if any,
// is on screen. It serializes independently timed reminder firings into
// a non-overlapping sequence of sessions: a firing that arrives while
// another session is visible is queued FIFO with per-kind dedup, and a
// firing that arrives during a look-away countdown is dropped.
type Coordinator struct {
	mu            sync.Mutex
	config        model.CoordinatorConfig
	options       Config
	active        model.Kind
	remaining     time.Duration
	countdownLeft int
	queue         []model.Kind
	next          map[model.Kind]time.Duration
	idleChecker   IdleChecker
	lastIdleCheck time.Time
	events        []chan Event
	stopCh        chan struct{}
	running       bool
	generation    uint64
}

// New creates a Coordinator with the provided configuration.
func New(config model.CoordinatorConfig, options Config) *Coordinator {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}

	coord := &Coordinator{
		config:  config,
		options: options,
		next:    make(map[model.Kind]time.Duration),
	}
	coord.resetScheduleLocked()
	return coord
}

// SetIdleChecker injects an idle checker.
func (coord *Coordinator) SetIdleChecker(checker IdleChecker) {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	coord.idleChecker = checker
}

// Subscribe registers a new observer channel.
func (coord *Coordinator) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	coord.mu.Lock()
	coord.events = append(coord.events, ch)
	coord.mu.Unlock()
	return ch
}

// Start launches the ticking loop. Restart after Stop is allowed; a
// tick left over from a previous loop is dropped by generation check.
func (coord *Coordinator) Start() {
	coord.mu.Lock()
	if coord.running {
		coord.mu.Unlock()
		return
	}
	coord.running = true
	coord.generation++
	coord.stopCh = make(chan struct{})
	coord.lastIdleCheck = time.Time{}
	stopCh := coord.stopCh
	generation := coord.generation
	coord.mu.Unlock()

	go coord.run(stopCh, generation)
}

// Stop terminates the ticking loop and closes observer channels.
func (coord *Coordinator) Stop() {
	coord.mu.Lock()
	if !coord.running {
		coord.mu.Unlock()
		return
	}
	close(coord.stopCh)
	coord.running = false
	coord.generation++
	events := coord.events
	coord.events = nil
	coord.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Configure updates the schedule for one kind and restarts all schedule
// countdowns. An in-progress session and the pending queue are left
// untouched; the new interval only affects future firings.
func (coord *Coordinator) Configure(kind model.Kind, interval time.Duration, enabled bool) {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	coord.config.SetReminder(kind, model.ReminderConfig{Interval: interval, Enabled: enabled})
	coord.resetScheduleLocked()
}

// UpdateConfig replaces the whole runtime configuration and restarts
// all schedule countdowns.
func (coord *Coordinator) UpdateConfig(config model.CoordinatorConfig) {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	coord.config = config
	coord.resetScheduleLocked()
}

// SetGlobalEnabled gates schedule advancement. Disabling stops future
// firings but lets an in-flight session finish naturally.
func (coord *Coordinator) SetGlobalEnabled(enabled bool) {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	if coord.config.GlobalEnabled == enabled {
		return
	}
	coord.config.GlobalEnabled = enabled
	if enabled {
		coord.resetScheduleLocked()
	}
}

// TestPreview requests an immediate presentation of the given kind,
// bypassing the scheduling cadence and enabled flags but going through
// the same queuing logic as a timer firing.
func (coord *Coordinator) TestPreview(kind model.Kind) {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	coord.triggerLocked(kind, time.Now())
}

// DismissActive ends the current session. User-initiated dismissal and
// auto-dismiss are treated identically; the queue advances either way.
func (coord *Coordinator) DismissActive() {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	if coord.active == "" {
		return
	}
	coord.finishSessionLocked(time.Now())
}

// ResetAll force-clears the active session, empties the queue, cancels
// any in-progress countdown and restarts all schedule countdowns.
func (coord *Coordinator) ResetAll() {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	ended := coord.active
	coord.active = ""
	coord.remaining = 0
	coord.countdownLeft = 0
	coord.queue = nil
	coord.resetScheduleLocked()
	if ended != "" {
		coord.emitLocked(Event{Type: EventHide, Kind: ended, At: time.Now()})
	}
}

// Active returns the kind currently on screen, or "" when idle.
func (coord *Coordinator) Active() model.Kind {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	return coord.active
}

// Pending returns a copy of the queued kinds in FIFO order.
func (coord *Coordinator) Pending() []model.Kind {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	return append([]model.Kind(nil), coord.queue...)
}

func (coord *Coordinator) run(stopCh chan struct{}, generation uint64) {
	ticker := time.NewTicker(coord.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			coord.tick(generation, tickTime)
		}
	}
}

func (coord *Coordinator) tick(generation uint64, tickTime time.Time) {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	if !coord.running || generation != coord.generation {
		return
	}

	if coord.active != "" {
		coord.advanceSessionLocked(coord.options.TickInterval, tickTime)
	} else if coord.config.GlobalEnabled {
		coord.handleIdleCheckLocked(tickTime)
	}

	if coord.config.GlobalEnabled {
		coord.advanceScheduleLocked(coord.options.TickInterval, tickTime)
		if coord.active == "" {
			coord.emitLocked(Event{
				Type:      EventProgress,
				Remaining: coord.nextReminderRemainingLocked(),
				At:        tickTime,
			})
		}
	}
}

func (coord *Coordinator) advanceSessionLocked(delta time.Duration, now time.Time) {
	if coord.active == model.KindLookAway {
		coord.countdownLeft--
		if coord.countdownLeft > 0 {
			coord.emitLocked(Event{
				Type:        EventCountdown,
				Kind:        coord.active,
				SecondsLeft: coord.countdownLeft,
				At:          now,
			})
			return
		}
		coord.finishSessionLocked(now)
		return
	}

	coord.remaining -= delta
	if coord.remaining > 0 {
		return
	}
	coord.finishSessionLocked(now)
}

func (coord *Coordinator) advanceScheduleLocked(delta time.Duration, now time.Time) {
	for _, kind := range model.Kinds {
		reminder := coord.config.Reminder(kind)
		if !reminder.Enabled || reminder.Interval <= 0 {
			continue
		}
		coord.next[kind] -= delta
		if coord.next[kind] <= 0 {
			coord.next[kind] = reminder.Interval
			coord.triggerLocked(kind, now)
		}
	}
}

// triggerLocked requests that kind be shown. Drop during a look-away
// countdown, enqueue with dedup while another session is active, start
// immediately otherwise.
func (coord *Coordinator) triggerLocked(kind model.Kind, now time.Time) {
	if coord.active == model.KindLookAway {
		return
	}
	if coord.active != "" {
		coord.enqueueLocked(kind)
		return
	}
	coord.startSessionLocked(kind, now)
}

func (coord *Coordinator) enqueueLocked(kind model.Kind) {
	for _, queued := range coord.queue {
		if queued == kind {
			return
		}
	}
	coord.queue = append(coord.queue, kind)
}

func (coord *Coordinator) startSessionLocked(kind model.Kind, now time.Time) {
	coord.active = kind
	if kind == model.KindLookAway {
		coord.countdownLeft = model.LookAwayCountdownSeconds
		coord.remaining = 0
	} else {
		coord.countdownLeft = 0
		coord.remaining = model.DisplayDuration(kind)
	}
	coord.emitLocked(Event{
		Type:        EventShow,
		Kind:        kind,
		SecondsLeft: coord.countdownLeft,
		At:          now,
	})
}

func (coord *Coordinator) finishSessionLocked(now time.Time) {
	ended := coord.active
	coord.active = ""
	coord.remaining = 0
	coord.countdownLeft = 0
	coord.emitLocked(Event{Type: EventHide, Kind: ended, At: now})
	coord.advanceQueueLocked(now)
}

func (coord *Coordinator) advanceQueueLocked(now time.Time) {
	if len(coord.queue) == 0 {
		return
	}
	head := coord.queue[0]
	coord.queue = coord.queue[1:]
	coord.startSessionLocked(head, now)
}

func (coord *Coordinator) handleIdleCheckLocked(now time.Time) {
	if !coord.config.IdleResetEnabled || coord.idleChecker == nil {
		return
	}
	if !coord.lastIdleCheck.IsZero() && now.Sub(coord.lastIdleCheck) < coord.config.IdleCheckInterval {
		return
	}
	coord.lastIdleCheck = now

	idleDuration, err := coord.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			coord.config.IdleResetEnabled = false
		}
		coord.emitLocked(Event{
			Type:    EventIdleError,
			Message: err.Error(),
			At:      now,
		})
		return
	}
	if idleDuration >= coord.config.IdleResetAfter {
		coord.resetScheduleLocked()
		coord.emitLocked(Event{
			Type:    EventIdleReset,
			Message: "idle reset",
			At:      now,
		})
	}
}

func (coord *Coordinator) resetScheduleLocked() {
	for _, kind := range model.Kinds {
		coord.next[kind] = coord.config.Reminder(kind).Interval
	}
}

func (coord *Coordinator) nextReminderRemainingLocked() time.Duration {
	var best time.Duration
	found := false
	for _, kind := range model.Kinds {
		if !coord.config.Reminder(kind).Enabled {
			continue
		}
		if !found || coord.next[kind] < best {
			best = coord.next[kind]
			found = true
		}
	}
	return best
}

func (coord *Coordinator) emitLocked(event Event) {
	events := append([]chan Event(nil), coord.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
