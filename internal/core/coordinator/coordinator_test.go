package coordinator

import (
	"testing"
	"time"

	"loook/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() model.CoordinatorConfig {
	return model.CoordinatorConfig{
		Blink:         model.ReminderConfig{Interval: 60 * time.Second, Enabled: true},
		Posture:       model.ReminderConfig{Interval: 600 * time.Second, Enabled: true},
		LookAway:      model.ReminderConfig{Interval: 1200 * time.Second, Enabled: true},
		GlobalEnabled: true,
	}
}

// newTestCoordinator builds a coordinator whose ticks are driven by the
// test instead of a live ticker goroutine.
func newTestCoordinator(config model.CoordinatorConfig) *Coordinator {
	coord := New(config, Config{TickInterval: time.Second})
	coord.running = true
	return coord
}

func tickN(coord *Coordinator, ticks int) {
	now := time.Now()
	for i := 0; i < ticks; i++ {
		now = now.Add(time.Second)
		coord.tick(coord.generation, now)
	}
}

func drain(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case event := <-ch:
			events = append(events, event)
		default:
			return events
		}
	}
}

func kindsOf(events []Event, eventType EventType) []model.Kind {
	var kinds []model.Kind
	for _, event := range events {
		if event.Type == eventType {
			kinds = append(kinds, event.Kind)
		}
	}
	return kinds
}

func TestTriggerWhenIdleShowsImmediately(t *testing.T) {
	for _, kind := range model.Kinds {
		coord := newTestCoordinator(testConfig())
		events := coord.Subscribe(4)

		coord.TestPreview(kind)

		require.Equal(t, kind, coord.Active())
		collected := drain(events)
		require.Len(t, collected, 1)
		assert.Equal(t, EventShow, collected[0].Type)
		assert.Equal(t, kind, collected[0].Kind)
	}
}

func TestEnqueueDeduplicates(t *testing.T) {
	coord := newTestCoordinator(testConfig())

	coord.TestPreview(model.KindBlink)
	coord.TestPreview(model.KindPosture)
	coord.TestPreview(model.KindPosture)

	require.Equal(t, model.KindBlink, coord.Active())
	assert.Equal(t, []model.Kind{model.KindPosture}, coord.Pending())

	coord.TestPreview(model.KindLookAway)
	assert.Equal(t, []model.Kind{model.KindPosture, model.KindLookAway}, coord.Pending())
}

func TestCountdownBlocksAllQueuing(t *testing.T) {
	coord := newTestCoordinator(testConfig())

	coord.TestPreview(model.KindLookAway)
	tickN(coord, 1)

	coord.TestPreview(model.KindBlink)
	coord.TestPreview(model.KindPosture)

	assert.Equal(t, model.KindLookAway, coord.Active())
	assert.Empty(t, coord.Pending())
}

func TestBlinkAutoDismissAfterTwoSeconds(t *testing.T) {
	coord := newTestCoordinator(testConfig())

	coord.TestPreview(model.KindBlink)
	tickN(coord, 1)
	require.Equal(t, model.KindBlink, coord.Active())
	tickN(coord, 1)
	assert.Equal(t, model.Kind(""), coord.Active())
}

func TestPostureAutoDismissAfterThreeSeconds(t *testing.T) {
	coord := newTestCoordinator(testConfig())

	coord.TestPreview(model.KindPosture)
	tickN(coord, 2)
	require.Equal(t, model.KindPosture, coord.Active())
	tickN(coord, 1)
	assert.Equal(t, model.Kind(""), coord.Active())
}

func TestLookAwayCountsDownTwentyTicks(t *testing.T) {
	coord := newTestCoordinator(testConfig())
	events := coord.Subscribe(32)

	coord.TestPreview(model.KindLookAway)
	tickN(coord, 19)
	require.Equal(t, model.KindLookAway, coord.Active())
	tickN(coord, 1)
	require.Equal(t, model.Kind(""), coord.Active())

	collected := drain(events)
	require.NotEmpty(t, collected)
	assert.Equal(t, EventShow, collected[0].Type)
	assert.Equal(t, model.LookAwayCountdownSeconds, collected[0].SecondsLeft)

	seconds := []int{}
	for _, event := range collected {
		if event.Type == EventCountdown {
			seconds = append(seconds, event.SecondsLeft)
		}
	}
	require.Len(t, seconds, 19)
	assert.Equal(t, 19, seconds[0])
	assert.Equal(t, 1, seconds[18])
	assert.Equal(t, []model.Kind{model.KindLookAway}, kindsOf(collected, EventHide))
}

func TestQueueAdvancesInFIFOOrder(t *testing.T) {
	coord := newTestCoordinator(testConfig())

	coord.TestPreview(model.KindBlink)
	coord.TestPreview(model.KindPosture)
	coord.TestPreview(model.KindLookAway)
	require.Equal(t, []model.Kind{model.KindPosture, model.KindLookAway}, coord.Pending())

	tickN(coord, 2)
	require.Equal(t, model.KindPosture, coord.Active())
	require.Equal(t, []model.Kind{model.KindLookAway}, coord.Pending())

	tickN(coord, 3)
	require.Equal(t, model.KindLookAway, coord.Active())
	assert.Empty(t, coord.Pending())
}

func TestDismissActiveAdvancesQueue(t *testing.T) {
	coord := newTestCoordinator(testConfig())
	events := coord.Subscribe(8)

	coord.TestPreview(model.KindBlink)
	coord.TestPreview(model.KindPosture)
	coord.DismissActive()

	assert.Equal(t, model.KindPosture, coord.Active())
	collected := drain(events)
	assert.Equal(t, []model.Kind{model.KindBlink}, kindsOf(collected, EventHide))
	assert.Equal(t, []model.Kind{model.KindBlink, model.KindPosture}, kindsOf(collected, EventShow))
}

func TestDismissActiveWhenIdleIsNoOp(t *testing.T) {
	coord := newTestCoordinator(testConfig())
	events := coord.Subscribe(4)

	coord.DismissActive()

	assert.Equal(t, model.Kind(""), coord.Active())
	assert.Empty(t, drain(events))
}

func TestResetAllReturnsToIdle(t *testing.T) {
	coord := newTestCoordinator(testConfig())

	coord.TestPreview(model.KindLookAway)
	tickN(coord, 5)
	coord.ResetAll()

	assert.Equal(t, model.Kind(""), coord.Active())
	assert.Empty(t, coord.Pending())

	coord.TestPreview(model.KindBlink)
	coord.TestPreview(model.KindPosture)
	coord.ResetAll()

	assert.Equal(t, model.Kind(""), coord.Active())
	assert.Empty(t, coord.Pending())
}

func TestConfigureLeavesActiveSessionUntouched(t *testing.T) {
	coord := newTestCoordinator(testConfig())

	coord.TestPreview(model.KindPosture)
	tickN(coord, 1)
	coord.Configure(model.KindPosture, 300*time.Second, true)

	// The running session keeps its original three second budget.
	tickN(coord, 1)
	require.Equal(t, model.KindPosture, coord.Active())
	tickN(coord, 1)
	assert.Equal(t, model.Kind(""), coord.Active())
}

func TestConfigureRestartsScheduleCountdowns(t *testing.T) {
	config := model.CoordinatorConfig{
		Blink:         model.ReminderConfig{Interval: 3 * time.Second, Enabled: true},
		GlobalEnabled: true,
	}
	coord := newTestCoordinator(config)

	tickN(coord, 2)
	require.Equal(t, model.Kind(""), coord.Active())

	coord.Configure(model.KindBlink, 5*time.Second, true)
	tickN(coord, 4)
	require.Equal(t, model.Kind(""), coord.Active())
	tickN(coord, 1)
	assert.Equal(t, model.KindBlink, coord.Active())
}

func TestSimultaneousFireQueuesShorterIntervalKind(t *testing.T) {
	config := model.CoordinatorConfig{
		Blink:         model.ReminderConfig{Interval: 10 * time.Second, Enabled: true},
		Posture:       model.ReminderConfig{Interval: 10 * time.Second, Enabled: true},
		GlobalEnabled: true,
	}
	coord := newTestCoordinator(config)

	tickN(coord, 10)

	assert.Equal(t, model.KindPosture, coord.Active())
	assert.Equal(t, []model.Kind{model.KindBlink}, coord.Pending())
}

func TestScheduleFiresOnInterval(t *testing.T) {
	config := model.CoordinatorConfig{
		Blink:         model.ReminderConfig{Interval: 4 * time.Second, Enabled: true},
		GlobalEnabled: true,
	}
	coord := newTestCoordinator(config)

	tickN(coord, 3)
	require.Equal(t, model.Kind(""), coord.Active())
	tickN(coord, 1)
	assert.Equal(t, model.KindBlink, coord.Active())
}

func TestDisabledKindNeverFires(t *testing.T) {
	config := model.CoordinatorConfig{
		Blink:         model.ReminderConfig{Interval: 2 * time.Second, Enabled: false},
		GlobalEnabled: true,
	}
	coord := newTestCoordinator(config)

	tickN(coord, 10)
	assert.Equal(t, model.Kind(""), coord.Active())

	// Manual preview bypasses the enabled flag.
	coord.TestPreview(model.KindBlink)
	assert.Equal(t, model.KindBlink, coord.Active())
}

func TestGlobalDisableLetsSessionFinishNaturally(t *testing.T) {
	config := model.CoordinatorConfig{
		Blink:         model.ReminderConfig{Interval: 2 * time.Second, Enabled: true},
		GlobalEnabled: true,
	}
	coord := newTestCoordinator(config)

	tickN(coord, 2)
	require.Equal(t, model.KindBlink, coord.Active())

	coord.SetGlobalEnabled(false)
	tickN(coord, 1)
	require.Equal(t, model.KindBlink, coord.Active())
	tickN(coord, 1)
	require.Equal(t, model.Kind(""), coord.Active())

	tickN(coord, 20)
	assert.Equal(t, model.Kind(""), coord.Active())
}

func TestProgressReportsNearestReminder(t *testing.T) {
	coord := newTestCoordinator(testConfig())
	events := coord.Subscribe(8)

	tickN(coord, 1)

	collected := drain(events)
	require.Len(t, collected, 1)
	require.Equal(t, EventProgress, collected[0].Type)
	assert.Equal(t, 59*time.Second, collected[0].Remaining)
}

type stubIdleChecker struct {
	idle  time.Duration
	err   error
	calls int
}

func (checker *stubIdleChecker) IdleDuration() (time.Duration, error) {
	checker.calls++
	return checker.idle, checker.err
}

func TestIdleResetRestartsSchedule(t *testing.T) {
	config := model.CoordinatorConfig{
		Blink:             model.ReminderConfig{Interval: 5 * time.Second, Enabled: true},
		GlobalEnabled:     true,
		IdleResetEnabled:  true,
		IdleResetAfter:    30 * time.Second,
		IdleCheckInterval: time.Second,
	}
	coord := newTestCoordinator(config)
	coord.SetIdleChecker(&stubIdleChecker{idle: time.Minute})
	events := coord.Subscribe(64)

	tickN(coord, 20)

	assert.Equal(t, model.Kind(""), coord.Active())
	var resets int
	for _, event := range drain(events) {
		if event.Type == EventIdleReset {
			resets++
		}
	}
	assert.NotZero(t, resets)
}

func TestIdleUnsupportedDisablesChecking(t *testing.T) {
	config := testConfig()
	config.IdleResetEnabled = true
	config.IdleResetAfter = 30 * time.Second
	config.IdleCheckInterval = time.Second
	coord := newTestCoordinator(config)

	checker := &stubIdleChecker{err: ErrIdleUnsupported}
	coord.SetIdleChecker(checker)
	events := coord.Subscribe(16)

	tickN(coord, 5)

	assert.Equal(t, 1, checker.calls)
	collected := drain(events)
	var idleErrors int
	for _, event := range collected {
		if event.Type == EventIdleError {
			idleErrors++
		}
	}
	assert.Equal(t, 1, idleErrors)
}

func TestStaleTickIsDropped(t *testing.T) {
	coord := newTestCoordinator(testConfig())

	coord.TestPreview(model.KindBlink)
	coord.tick(coord.generation+1, time.Now())
	coord.tick(coord.generation+1, time.Now())

	assert.Equal(t, model.KindBlink, coord.Active())
	assert.Equal(t, 2*time.Second, coord.remaining)
}

func TestStopClosesSubscribersAndRestartWorks(t *testing.T) {
	coord := New(testConfig(), Config{TickInterval: time.Second})
	events := coord.Subscribe(1)

	coord.Start()
	coord.Stop()

	_, open := <-events
	assert.False(t, open)

	// Stop is idempotent and the loop can be restarted.
	coord.Stop()
	coord.Start()
	coord.Stop()
}
