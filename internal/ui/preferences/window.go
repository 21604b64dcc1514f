package preferences

import (
	"fmt"
	"strconv"
	"time"

	"loook/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines settings window action handlers.
type Callbacks struct {
	OnSave    func(Settings)
	OnPreview func(model.Kind)
	OnReset   func()
}

// Window handles the settings UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	callbacks   Callbacks
	blinkInt    *widget.Entry
	blinkOn     *widget.Check
	postureInt  *widget.Entry
	postureOn   *widget.Check
	lookAwayInt *widget.Entry
	lookAwayOn  *widget.Check
	globalOn    *widget.Check
	idleOn      *widget.Check
	loginOn     *widget.Check
}

// New creates a settings window.
func New(app fyne.App, settings Settings, callbacks Callbacks) *Window {
	window := app.NewWindow("Loook Settings")

	blinkInt := widget.NewEntry()
	postureInt := widget.NewEntry()
	lookAwayInt := widget.NewEntry()

	blinkOn := widget.NewCheck("Blink reminder", nil)
	postureOn := widget.NewCheck("Posture reminder", nil)
	lookAwayOn := widget.NewCheck("Look-away reminder", nil)

	globalOn := widget.NewCheck("Enable reminders", nil)
	idleOn := widget.NewCheck("Reset timers when away", nil)
	loginOn := widget.NewCheck("Launch at login", nil)

	prefs := &Window{
		window:      window,
		settings:    settings,
		callbacks:   callbacks,
		blinkInt:    blinkInt,
		blinkOn:     blinkOn,
		postureInt:  postureInt,
		postureOn:   postureOn,
		lookAwayInt: lookAwayInt,
		lookAwayOn:  lookAwayOn,
		globalOn:    globalOn,
		idleOn:      idleOn,
		loginOn:     loginOn,
	}
	prefs.applySettings(settings)

	previewRow := container.NewHBox(
		widget.NewLabel("Preview"),
		widget.NewButton("Blink", func() { prefs.preview(model.KindBlink) }),
		widget.NewButton("Posture", func() { prefs.preview(model.KindPosture) }),
		widget.NewButton("Look away", func() { prefs.preview(model.KindLookAway) }),
	)

	resetButton := widget.NewButton("Reset Pop-ups", func() {
		if prefs.callbacks.OnReset != nil {
			prefs.callbacks.OnReset()
		}
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("Reminders", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		globalOn,
		blinkOn,
		container.NewHBox(widget.NewLabel("Blink every"), blinkInt, widget.NewLabel("sec")),
		postureOn,
		container.NewHBox(widget.NewLabel("Posture every"), postureInt, widget.NewLabel("sec")),
		lookAwayOn,
		container.NewHBox(widget.NewLabel("Look away every"), lookAwayInt, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		idleOn,
		loginOn,
		previewRow,
		resetButton,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 480))

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.applySettings(settings)
}

func (prefs *Window) applySettings(settings Settings) {
	prefs.blinkInt.SetText(fmt.Sprintf("%d", int(settings.BlinkInterval.Seconds())))
	prefs.postureInt.SetText(fmt.Sprintf("%d", int(settings.PostureInterval.Seconds())))
	prefs.lookAwayInt.SetText(fmt.Sprintf("%d", int(settings.LookAwayInterval.Seconds())))
	prefs.blinkOn.SetChecked(settings.BlinkEnabled)
	prefs.postureOn.SetChecked(settings.PostureEnabled)
	prefs.lookAwayOn.SetChecked(settings.LookAwayEnabled)
	prefs.globalOn.SetChecked(settings.GlobalEnabled)
	prefs.idleOn.SetChecked(settings.IdleEnabled)
	prefs.loginOn.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) preview(kind model.Kind) {
	if prefs.callbacks.OnPreview != nil {
		prefs.callbacks.OnPreview(kind)
	}
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveInt(prefs.blinkInt.Text); ok {
		settings.BlinkInterval = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.postureInt.Text); ok {
		settings.PostureInterval = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.lookAwayInt.Text); ok {
		settings.LookAwayInterval = time.Duration(seconds) * time.Second
	}

	settings.BlinkEnabled = prefs.blinkOn.Checked
	settings.PostureEnabled = prefs.postureOn.Checked
	settings.LookAwayEnabled = prefs.lookAwayOn.Checked
	settings.GlobalEnabled = prefs.globalOn.Checked
	settings.IdleEnabled = prefs.idleOn.Checked
	settings.LaunchAtLogin = prefs.loginOn.Checked

	settings = settings.Clamped()
	prefs.settings = settings
	prefs.applySettings(settings)
	if prefs.callbacks.OnSave != nil {
		prefs.callbacks.OnSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
