package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"audio2text/internal/app/api/provider"
	"audio2text/internal/app/tempfile"
)

// Config holds everything the application reads from the environment.
type Config struct {
	Provider  provider.Settings
	Port      string
	TempDir   string
	Language  string // default display language for the UI
	HistoryDB string // empty disables persisted history
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; keys may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// Load builds the configuration from the process environment, overlaying
// the optional providers file named by A2T_PROVIDERS_FILE.
func Load() (Config, error) {
	cfg := FromEnv()
	if path := os.Getenv("A2T_PROVIDERS_FILE"); path != "" {
		pf, err := LoadProvidersFile(path)
		if err != nil {
			return cfg, err
		}
		pf.Apply(&cfg)
	}
	return cfg, nil
}

// FromEnv builds the configuration from the process environment.
func FromEnv() Config {
	return Config{
		Provider: provider.Settings{
			Name:               getEnvOrDefault("A2T_PROVIDER", provider.NameOpenAI),
			OpenAIAPIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			OpenAIModel:        os.Getenv("OPENAI_TRANSCRIBE_MODEL"),
			OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
			WhisperBinary:      os.Getenv("WHISPER_CPP_BINARY"),
			WhisperModel:       os.Getenv("WHISPER_CPP_MODEL"),
			WhisperExtraArgs:   os.Getenv("WHISPER_CPP_ARGS"),
			ServerURL:          os.Getenv("WHISPER_SERVER_URL"),
			ServerChunkSeconds: getEnvInt("WHISPER_SERVER_CHUNK_SECONDS", 60),
			Language:           os.Getenv("A2T_LANGUAGE_CODE"),
		},
		Port:      getEnvOrDefault("A2T_PORT", "8080"),
		TempDir:   getEnvOrDefault("A2T_TEMP_DIR", tempfile.DefaultDir),
		Language:  getEnvOrDefault("A2T_LANGUAGE", "Auto Detect"),
		HistoryDB: os.Getenv("A2T_HISTORY_DB"),
	}
}

// Validate checks that the selected provider has the configuration it
// needs, failing fast before any request is served.
func (c Config) Validate() error {
	switch c.Provider.Name {
	case provider.NameOpenAI:
		if c.Provider.OpenAIAPIKey == "" {
			return fmt.Errorf("provider %s requires OPENAI_API_KEY - add it to your environment or .env file", c.Provider.Name)
		}
		if !strings.HasPrefix(c.Provider.OpenAIAPIKey, "sk-") {
			return fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
	case provider.NameWhisperCpp:
		if c.Provider.WhisperBinary == "" || c.Provider.WhisperModel == "" {
			return fmt.Errorf("provider %s requires WHISPER_CPP_BINARY and WHISPER_CPP_MODEL", c.Provider.Name)
		}
	case provider.NameWhisperServer:
		if c.Provider.ServerURL == "" {
			return fmt.Errorf("provider %s requires WHISPER_SERVER_URL", c.Provider.Name)
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider.Name)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
