package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"loook/internal/core/coordinator"
	"loook/internal/platform"
	"loook/internal/storage"
	"loook/internal/ui/banner"
	"loook/internal/ui/preferences"
	"loook/internal/ui/tray"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const appName = "Loook"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.loook.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("Loook is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	coord := coordinator.New(settings.CoordinatorConfig(), coordinator.Config{TickInterval: time.Second})
	coord.SetIdleChecker(platform.NewIdleProvider())

	bannerWindow := banner.New(fyneApp, func() {
		coord.DismissActive()
	})

	platformService := platform.NewService()

	var trayManager *tray.Manager
	prefsWindow := preferences.New(fyneApp, settings, preferences.Callbacks{
		OnSave: func(updated preferences.Settings) {
			settings = updated
			if err := storage.SaveSettings(appName, settings); err != nil {
				log.Printf("save settings: %v", err)
			}
			// Interval changes discard any stale session and queue.
			coord.ResetAll()
			coord.UpdateConfig(settings.CoordinatorConfig())
			trayManager.SetEnabled(settings.GlobalEnabled)
			applyAutostart(platformService, settings.LaunchAtLogin)
		},
		OnPreview: coord.TestPreview,
		OnReset:   coord.ResetAll,
	})

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnToggle: func() {
			settings.GlobalEnabled = !settings.GlobalEnabled
			coord.SetGlobalEnabled(settings.GlobalEnabled)
			trayManager.SetEnabled(settings.GlobalEnabled)
			prefsWindow.UpdateSettings(settings)
			if err := storage.SaveSettings(appName, settings); err != nil {
				log.Printf("save settings: %v", err)
			}
		},
		OnPreview: coord.TestPreview,
		OnReset:   coord.ResetAll,
		OnQuit: func() {
			coord.Stop()
			fyneApp.Quit()
		},
	})
	trayManager.SetEnabled(settings.GlobalEnabled)
	desktopApp.SetSystemTrayIcon(theme.VisibilityIcon())

	events := coord.Subscribe(16)
	go func() {
		for event := range events {
			switch event.Type {
			case coordinator.EventShow:
				bannerWindow.Show(event.Kind, event.SecondsLeft)
			case coordinator.EventCountdown:
				bannerWindow.SetCountdown(event.SecondsLeft)
			case coordinator.EventHide:
				bannerWindow.Hide()
			case coordinator.EventProgress:
				trayManager.SetStatus("next reminder in " + formatRemaining(event.Remaining))
			case coordinator.EventIdleError:
				log.Printf("idle check: %s", event.Message)
			}
		}
	}()

	coord.Start()
	fyneApp.Run()
}

// applyAutostart registers or removes the login item. Failures are
// logged and otherwise swallowed; autostart is best effort.
func applyAutostart(service platform.Service, enabled bool) {
	if !enabled {
		if err := service.DisableAutostart(appName); err != nil {
			log.Printf("disable autostart: %v", err)
		}
		return
	}
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("enable autostart: %v", err)
		return
	}
	if err := service.EnableAutostart(appName, execPath); err != nil {
		log.Printf("enable autostart: %v", err)
	}
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
