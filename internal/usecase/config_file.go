package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/3-lines-studio/svger/internal/config"
)

// ConfigService inspects and edits a project's config file.
type ConfigService struct {
	fs   FileSystem
	path string
}

func NewConfigService(fs FileSystem, path string) *ConfigService {
	return &ConfigService{
		fs:   fs,
		path: path,
	}
}

func (s *ConfigService) Path() string {
	return s.path
}

func (s *ConfigService) Load() (config.Config, error) {
	return config.Load(s.fs, s.path)
}

// Show renders the effective config, defaults included, as indented
// JSON.
func (s *ConfigService) Show() (string, error) {
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	doc, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(doc) + "\n", nil
}

func (s *ConfigService) Get(key string) (string, error) {
	return config.Get(s.fs, s.path, key)
}

func (s *ConfigService) Set(key, value string) error {
	return config.Set(s.fs, s.path, key, value)
}

// Validate loads the file and checks the values the schema cannot
// express, such as the framework resolving to a known target.
func (s *ConfigService) Validate() error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	_, err = OptionsFromConfig(cfg)
	return err
}

func (s *ConfigService) Init(cfg config.Config) error {
	return config.Init(s.fs, s.path, cfg)
}
