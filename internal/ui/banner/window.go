package banner

import (
	"fmt"
	"image/color"

	"loook/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	bannerWidth  = float32(340)
	bannerHeight = float32(120)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window is the transient reminder card. It renders whatever the
// coordinator tells it to show and reports user dismissal back through
// the onDismiss callback.
type Window struct {
	app            fyne.App
	window         fyne.Window
	background     *canvas.Rectangle
	titleLabel     *canvas.Text
	messageLabel   *canvas.Text
	countdownLabel *canvas.Text
	closeButton    *widget.Button
	onDismiss      func()
	visible        bool
}

// New creates a banner window.
func New(app fyne.App, onDismiss func()) *Window {
	window := app.NewWindow("Loook")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 24, G: 24, B: 28, A: 235})

	titleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 20
	titleLabel.Alignment = fyne.TextAlignCenter

	messageLabel := canvas.NewText("", color.NRGBA{R: 200, G: 200, B: 205, A: 255})
	messageLabel.TextSize = 14
	messageLabel.Alignment = fyne.TextAlignCenter

	countdownLabel := canvas.NewText("", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	countdownLabel.TextStyle = fyne.TextStyle{Bold: true}
	countdownLabel.TextSize = 26
	countdownLabel.Alignment = fyne.TextAlignCenter

	closeButton := widget.NewButton("Dismiss", nil)

	content := container.NewVBox(
		layout.NewSpacer(),
		titleLabel,
		messageLabel,
		countdownLabel,
		container.NewHBox(layout.NewSpacer(), closeButton, layout.NewSpacer()),
		layout.NewSpacer(),
	)
	window.SetContent(container.NewMax(background, content))
	window.Resize(fyne.NewSize(bannerWidth, bannerHeight))

	banner := &Window{
		app:            app,
		window:         window,
		background:     background,
		titleLabel:     titleLabel,
		messageLabel:   messageLabel,
		countdownLabel: countdownLabel,
		closeButton:    closeButton,
		onDismiss:      onDismiss,
	}

	closeButton.OnTapped = func() {
		if banner.onDismiss != nil {
			banner.onDismiss()
		}
	}

	return banner
}

// Show presents a reminder card for the given kind. For the look-away
// kind secondsLeft carries the initial countdown value.
func (banner *Window) Show(kind model.Kind, secondsLeft int) {
	fyne.Do(func() {
		banner.titleLabel.Text = headline(kind)
		banner.messageLabel.Text = message(kind)
		banner.setCountdownText(kind, secondsLeft)
		banner.titleLabel.Refresh()
		banner.messageLabel.Refresh()

		banner.window.Resize(fyne.NewSize(bannerWidth, bannerHeight))
		banner.window.CenterOnScreen()
		banner.window.Show()
		banner.visible = true
	})
}

// SetCountdown updates the look-away countdown label.
func (banner *Window) SetCountdown(secondsLeft int) {
	fyne.Do(func() {
		banner.setCountdownText(model.KindLookAway, secondsLeft)
	})
}

// Hide closes the card.
func (banner *Window) Hide() {
	fyne.Do(func() {
		if !banner.visible {
			return
		}
		banner.visible = false
		banner.window.Hide()
	})
}

func (banner *Window) setCountdownText(kind model.Kind, secondsLeft int) {
	if kind == model.KindLookAway && secondsLeft > 0 {
		banner.countdownLabel.Text = fmt.Sprintf("%d s", secondsLeft)
	} else {
		banner.countdownLabel.Text = ""
	}
	banner.countdownLabel.Refresh()
}

func headline(kind model.Kind) string {
	switch kind {
	case model.KindPosture:
		return "Check your posture"
	case model.KindLookAway:
		return "Look into the distance"
	default:
		return "Blink!"
	}
}

func message(kind model.Kind) string {
	switch kind {
	case model.KindPosture:
		return "Straighten your back and relax your shoulders"
	case model.KindLookAway:
		return "Focus on something at least 20 feet away"
	default:
		return "Close your eyes for a moment"
	}
}
