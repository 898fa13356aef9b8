package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ProvidersFile is the optional YAML settings file that overrides
// provider configuration taken from the environment. Values in the file are
// environment-expanded so secrets can stay in the environment.
type ProvidersFile struct {
	Provider string `yaml:"provider,omitempty"`

	OpenAI struct {
		Model   string `yaml:"model,omitempty"`
		BaseURL string `yaml:"base_url,omitempty"`
	} `yaml:"openai,omitempty"`

	WhisperCpp struct {
		Binary    string `yaml:"binary,omitempty"`
		Model     string `yaml:"model,omitempty"`
		ExtraArgs string `yaml:"extra_args,omitempty"`
	} `yaml:"whisper_cpp,omitempty"`

	WhisperServer struct {
		BaseURL      string        `yaml:"base_url,omitempty"`
		ChunkSeconds int           `yaml:"chunk_seconds,omitempty"`
		Timeout      time.Duration `yaml:"timeout,omitempty"`
	} `yaml:"whisper_server,omitempty"`
}

// LoadProvidersFile reads and parses the YAML settings file at path.
func LoadProvidersFile(path string) (*ProvidersFile, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var pf ProvidersFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &pf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &pf, nil
}

// Apply overlays the file's non-empty values onto cfg.
func (pf *ProvidersFile) Apply(cfg *Config) {
	if pf.Provider != "" {
		cfg.Provider.Name = pf.Provider
	}
	if pf.OpenAI.Model != "" {
		cfg.Provider.OpenAIModel = pf.OpenAI.Model
	}
	if pf.OpenAI.BaseURL != "" {
		cfg.Provider.OpenAIBaseURL = pf.OpenAI.BaseURL
	}
	if pf.WhisperCpp.Binary != "" {
		cfg.Provider.WhisperBinary = pf.WhisperCpp.Binary
	}
	if pf.WhisperCpp.Model != "" {
		cfg.Provider.WhisperModel = pf.WhisperCpp.Model
	}
	if pf.WhisperCpp.ExtraArgs != "" {
		cfg.Provider.WhisperExtraArgs = pf.WhisperCpp.ExtraArgs
	}
	if pf.WhisperServer.BaseURL != "" {
		cfg.Provider.ServerURL = pf.WhisperServer.BaseURL
	}
	if pf.WhisperServer.ChunkSeconds > 0 {
		cfg.Provider.ServerChunkSeconds = pf.WhisperServer.ChunkSeconds
	}
	if pf.WhisperServer.Timeout > 0 {
		cfg.Provider.ServerTimeout = pf.WhisperServer.Timeout
	}
}
