package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"loook/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	BlinkIntervalSeconds    int  `yaml:"blink_interval_seconds"`
	BlinkEnabled            bool `yaml:"blink_enabled"`
	PostureIntervalSeconds  int  `yaml:"posture_interval_seconds"`
	PostureEnabled          bool `yaml:"posture_enabled"`
	LookAwayIntervalSeconds int  `yaml:"look_away_interval_seconds"`
	LookAwayEnabled         bool `yaml:"look_away_enabled"`
	RemindersEnabled        bool `yaml:"reminders_enabled"`
	IdleEnabled             bool `yaml:"idle_enabled"`
	LaunchAtLogin           bool `yaml:"launch_at_login"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return settings, err
	}
	return loadFrom(configPath)
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return saveTo(configPath, settings)
}

func loadFrom(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

func saveTo(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		BlinkIntervalSeconds:    int(settings.BlinkInterval / time.Second),
		BlinkEnabled:            settings.BlinkEnabled,
		PostureIntervalSeconds:  int(settings.PostureInterval / time.Second),
		PostureEnabled:          settings.PostureEnabled,
		LookAwayIntervalSeconds: int(settings.LookAwayInterval / time.Second),
		LookAwayEnabled:         settings.LookAwayEnabled,
		RemindersEnabled:        settings.GlobalEnabled,
		IdleEnabled:             settings.IdleEnabled,
		LaunchAtLogin:           settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.BlinkIntervalSeconds > 0 {
		settings.BlinkInterval = time.Duration(fileData.BlinkIntervalSeconds) * time.Second
	}
	if fileData.PostureIntervalSeconds > 0 {
		settings.PostureInterval = time.Duration(fileData.PostureIntervalSeconds) * time.Second
	}
	if fileData.LookAwayIntervalSeconds > 0 {
		settings.LookAwayInterval = time.Duration(fileData.LookAwayIntervalSeconds) * time.Second
	}

	settings.BlinkEnabled = fileData.BlinkEnabled
	settings.PostureEnabled = fileData.PostureEnabled
	settings.LookAwayEnabled = fileData.LookAwayEnabled
	settings.GlobalEnabled = fileData.RemindersEnabled
	settings.IdleEnabled = fileData.IdleEnabled
	settings.LaunchAtLogin = fileData.LaunchAtLogin

	*settings = settings.Clamped()
}
