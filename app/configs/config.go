package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Config struct {
	Server  ServerConfig  `json:"server"`
	Project ProjectConfig `json:"project"`
	Model   ModelConfig   `json:"model"`
}

type ServerConfig struct {
	Port               int    `json:"port"`
	StaticDir          string `json:"static_dir"`
	ShutdownTimeoutSec int    `json:"shutdown_timeout_sec"`
}

type ProjectConfig struct {
	DataFile       string `json:"data_file"`
	TotalWeeks     int    `json:"total_weeks"`
	HistoryWindow  int    `json:"history_window"`
	InteractiveCLI bool   `json:"interactive_cli"`
}

type ModelConfig struct {
	Name              string `json:"name"`
	BaseURL           string `json:"base_url"`
	MaxTokens         int    `json:"max_tokens"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
	APIKeyEnv         string `json:"api_key_env"`
	DotfileName       string `json:"dotfile_name"`
}

type Manager struct {
	path string
	mu   sync.RWMutex
	cfg  Config
}

func DefaultPath() string {
	return filepath.Join("config", "config.json")
}

func NewManager(path string) (*Manager, error) {
	cfg := defaultConfig()
	mgr := &Manager{
		path: path,
		cfg:  cfg,
	}
	if err := mgr.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	if err := mgr.save(); err != nil {
		return nil, err
	}
	return mgr, nil
}

func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return err
	}
	var fileCfg Config
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return err
	}
	m.cfg = fileCfg
	applyDefaults(&m.cfg)
	return nil
}

func (m *Manager) save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m.cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0644)
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:               5050,
			StaticDir:          "web/static",
			ShutdownTimeoutSec: 5,
		},
		Project: ProjectConfig{
			DataFile:      filepath.Join("data", "project_data.json"),
			TotalWeeks:    8,
			HistoryWindow: 6,
		},
		Model: ModelConfig{
			Name:              "gpt-4o",
			MaxTokens:         2000,
			RequestTimeoutSec: 120,
			APIKeyEnv:         "OPENAI_API_KEY",
			DotfileName:       ".env",
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 5050
	}
	if strings.TrimSpace(cfg.Server.StaticDir) == "" {
		cfg.Server.StaticDir = "web/static"
	}
	if cfg.Server.ShutdownTimeoutSec <= 0 {
		cfg.Server.ShutdownTimeoutSec = 5
	}
	if strings.TrimSpace(cfg.Project.DataFile) == "" {
		cfg.Project.DataFile = filepath.Join("data", "project_data.json")
	}
	if cfg.Project.TotalWeeks <= 0 {
		cfg.Project.TotalWeeks = 8
	}
	if cfg.Project.HistoryWindow <= 0 {
		cfg.Project.HistoryWindow = 6
	}
	if strings.TrimSpace(cfg.Model.Name) == "" {
		cfg.Model.Name = "gpt-4o"
	}
	if cfg.Model.MaxTokens <= 0 {
		cfg.Model.MaxTokens = 2000
	}
	if cfg.Model.RequestTimeoutSec <= 0 {
		cfg.Model.RequestTimeoutSec = 120
	}
	if strings.TrimSpace(cfg.Model.APIKeyEnv) == "" {
		cfg.Model.APIKeyEnv = "OPENAI_API_KEY"
	}
	if strings.TrimSpace(cfg.Model.DotfileName) == "" {
		cfg.Model.DotfileName = ".env"
	}
}
