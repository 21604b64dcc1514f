package tray

import (
	"fmt"

	"loook/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences func()
	OnToggle      func()
	OnPreview     func(model.Kind)
	OnReset       func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	previewItem *fyne.MenuItem
	resetItem   *fyne.MenuItem
	callbacks   Callbacks
	enabled     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		enabled:   true,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.previewItem = fyne.NewMenuItem("Preview reminder...", nil)
	manager.previewItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("Blink", func() {
			manager.preview(model.KindBlink)
		}),
		fyne.NewMenuItem("Posture", func() {
			manager.preview(model.KindPosture)
		}),
		fyne.NewMenuItem("Look away", func() {
			manager.preview(model.KindLookAway)
		}),
	)

	manager.toggleItem = fyne.NewMenuItem("Disable reminders", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.resetItem = fyne.NewMenuItem("Reset Pop-ups", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetEnabled updates the global-enablement toggle label.
func (manager *Manager) SetEnabled(enabled bool) {
	manager.enabled = enabled
	if enabled {
		manager.toggleItem.Label = "Disable reminders"
	} else {
		manager.toggleItem.Label = "Enable reminders"
	}
	manager.refreshStatus()
}

func (manager *Manager) preview(kind model.Kind) {
	if manager.callbacks.OnPreview != nil {
		manager.callbacks.OnPreview(kind)
	}
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if !manager.enabled {
		status = "reminders off"
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Loook",
		manager.statusItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		manager.previewItem,
		manager.toggleItem,
		manager.resetItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
