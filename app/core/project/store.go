package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
)

// Store persists the project State as a single JSON document. Every
// request loads and rewrites the whole file; the last writer wins.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the document; a missing file yields the default plan.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultState(), nil
		}
		return nil, fmt.Errorf("load project data: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode project data: %w", err)
	}
	return &st, nil
}

func (s *Store) Save(st *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode project data: %w", err)
	}
	return os.WriteFile(s.path, pretty.PrettyOptions(data, &pretty.Options{Indent: "  "}), 0644)
}

// Ensure writes the default document when no data file exists yet.
func (s *Store) Ensure() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return s.Save(DefaultState())
}
