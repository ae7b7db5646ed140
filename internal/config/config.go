// Package config loads and persists the application configuration.
//
// Configuration lives in a TOML file at ~/.finsight/config.toml. The
// file has a fixed shape: unknown keys are ignored on load and never
// written back. API keys may also come from the environment; the
// environment fills in keys the file leaves empty, so keys need not
// be stored on disk, but a key set in the file wins.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables consulted for API keys.
const (
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// Default values applied when the file is missing or a field is unset.
const (
	DefaultEmbeddingProvider = "ollama"
	DefaultLLMProvider       = "ollama"
	DefaultTopK              = 3
	DefaultMaxContextChars   = 12000
	DefaultChunkMaxChars     = 2000
	DefaultChunkMinChars     = 30
)

// Config is the application configuration.
type Config struct {
	// DataDir overrides the default ~/.finsight/data location.
	DataDir string `toml:"data_dir,omitempty"`

	Embedding Embedding `toml:"embedding"`
	LLM       LLM       `toml:"llm"`
	Retrieval Retrieval `toml:"retrieval"`
	Chunking  Chunking  `toml:"chunking"`
}

// Embedding configures the embedding provider.
type Embedding struct {
	// Provider selects the adapter: "ollama" or "openai".
	Provider string `toml:"provider"`
	Model    string `toml:"model,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`
	APIKey   string `toml:"api_key,omitempty"`
}

// LLM configures the answer generation provider.
type LLM struct {
	// Provider selects the adapter: "ollama", "openai" or "gemini".
	Provider string `toml:"provider"`
	Model    string `toml:"model,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`
	APIKey   string `toml:"api_key,omitempty"`
}

// Retrieval configures query-time behaviour.
type Retrieval struct {
	// TopK is the number of passages retrieved per question.
	TopK int `toml:"top_k"`

	// MaxContextChars bounds the context block handed to the LLM.
	MaxContextChars int `toml:"max_context_chars"`
}

// Chunking configures ingestion-time chunk sizing.
type Chunking struct {
	MaxChars int `toml:"max_chars"`
	MinChars int `toml:"min_chars"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Embedding: Embedding{Provider: DefaultEmbeddingProvider},
		LLM:       LLM{Provider: DefaultLLMProvider},
		Retrieval: Retrieval{
			TopK:            DefaultTopK,
			MaxContextChars: DefaultMaxContextChars,
		},
		Chunking: Chunking{
			MaxChars: DefaultChunkMaxChars,
			MinChars: DefaultChunkMinChars,
		},
	}
}

// Dir returns the configuration directory, creating it if needed.
// If configDir is empty, defaults to ~/.finsight.
func Dir(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".finsight")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return configDir, nil
}

// Load reads the configuration from configDir, applying defaults for
// missing fields and environment API keys where the file has none.
// A missing file yields the defaults without error.
func Load(configDir string) (Config, error) {
	cfg := Default()

	dir, err := Dir(configDir)
	if err != nil {
		return cfg, err
	}

	path := filepath.Join(dir, "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// Save writes the configuration to configDir as TOML.
func Save(configDir string, cfg Config) error {
	dir, err := Dir(configDir)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyDefaults fills fields the file left unset.
func (c *Config) applyDefaults() {
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = DefaultEmbeddingProvider
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = DefaultLLMProvider
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = DefaultTopK
	}
	if c.Retrieval.MaxContextChars == 0 {
		c.Retrieval.MaxContextChars = DefaultMaxContextChars
	}
	if c.Chunking.MaxChars == 0 {
		c.Chunking.MaxChars = DefaultChunkMaxChars
	}
	if c.Chunking.MinChars == 0 {
		c.Chunking.MinChars = DefaultChunkMinChars
	}
}

// applyEnv fills API keys from the environment when the file has none.
func (c *Config) applyEnv() {
	if c.Embedding.APIKey == "" && c.Embedding.Provider == "openai" {
		c.Embedding.APIKey = os.Getenv(EnvOpenAIAPIKey)
	}
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "openai":
			c.LLM.APIKey = os.Getenv(EnvOpenAIAPIKey)
		case "gemini":
			c.LLM.APIKey = os.Getenv(EnvGeminiAPIKey)
		}
	}
}
