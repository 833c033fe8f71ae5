package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings is the external configuration surface of the combiner. Action
// triggers (merge, clear) are cli flags and web routes, not settings.
type Settings struct {
	// Slash-separated path from the scene root to the node that receives
	// duplicated collision shapes. Empty disables collision extraction.
	CollisionDestination string `yaml:"collision_destination"`

	// When true, direct children of the anchor are hidden after a merge
	// and restored on clear.
	ToggleVisibility bool `yaml:"toggle_visibility"`

	// When true, the first spatial direct child of the anchor is removed
	// at the run-mode transition.
	DeleteOnLaunch bool `yaml:"delete_on_launch"`
}

var settings Settings

func GetSettings() Settings {
	return settings
}

func SetSettings(s Settings) {
	settings = s
}

func LoadSettings(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to read settings file")
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return errors.Wrapf(err, "Failed to parse settings file")
	}
	settings = s
	return nil
}
