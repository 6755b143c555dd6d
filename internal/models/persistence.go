package models

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Export is a write-only record of a finished or ongoing session. It is
// never read back: every session starts fresh.
type Export struct {
	SessionID  string       `yaml:"session_id"`
	ExportedAt time.Time    `yaml:"exported_at"`
	Defeated   bool         `yaml:"defeated"`
	Player     *PlayerState `yaml:"player"`
	Turns      []Turn       `yaml:"turns"`
}

// Save writes the export to <dir>/<session id>.yaml and returns the path.
func (e *Export) Save(dir string) (string, error) {
	if e.SessionID == "" {
		return "", fmt.Errorf("export has no session id")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}

	path := filepath.Join(dir, e.SessionID+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
