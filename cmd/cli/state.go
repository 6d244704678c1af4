package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// currentFile remembers the board the next command applies to.
type currentFile struct {
	BoardID string `json:"board_id"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "kanban")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kanban")
}

func currentPath() string { return filepath.Join(cfgDir(), "current.json") }

func saveCurrent(boardID string) error {
	if err := os.MkdirAll(cfgDir(), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(currentFile{BoardID: boardID}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(currentPath(), b, 0o600)
}

func loadCurrent() (string, error) {
	b, err := os.ReadFile(currentPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errNoCurrent
		}
		return "", err
	}
	var cf currentFile
	if err := json.Unmarshal(b, &cf); err != nil {
		return "", err
	}
	if cf.BoardID == "" {
		return "", errNoCurrent
	}
	return cf.BoardID, nil
}

func clearCurrent() error {
	err := os.Remove(currentPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

var errNoCurrent = errors.New("no board selected (use --board or `kb board use <id>`)")
