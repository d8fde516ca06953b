package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ErrMissingAPIKey is returned by RequireAPIKey when no credential was found.
var ErrMissingAPIKey = errors.New("LLM API key is not configured (set LLM_API_KEY)")

type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Paths     PathsConfig     `yaml:"paths"`
	Report    ReportConfig    `yaml:"report"`
	Generator GeneratorConfig `yaml:"generator"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type LLMConfig struct {
	Provider  string `yaml:"provider" env:"LLM_PROVIDER"`
	Model     string `yaml:"model" env:"LLM_MODEL"`
	APIKey    string `yaml:"api_key" env:"LLM_API_KEY"`
	BaseURL   string `yaml:"base_url" env:"LLM_BASE_URL"`
	MaxTokens int    `yaml:"max_tokens" env:"LLM_MAX_TOKENS"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path" env:"FFMPEG_PATH"`
	Seek       string `yaml:"seek"`
}

type PathsConfig struct {
	Output         string `yaml:"output" env:"CAPTION_OUTPUT_DIR"`
	Examples       string `yaml:"examples" env:"CAPTION_EXAMPLES_FILE"`
	VideoExtension string `yaml:"video_extension"`
}

type ReportConfig struct {
	Docx bool `yaml:"docx" env:"CAPTION_REPORT_DOCX"`
}

type GeneratorConfig struct {
	Quota      int `yaml:"quota"`
	BatchSize  int `yaml:"batch_size"`
	SampleSize int `yaml:"sample_size"`
	MaxTokens  int `yaml:"max_tokens"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
	File  string `yaml:"file" env:"LOG_FILE"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" env:"METRICS_ADDR"`
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. The file must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

// LoadOptional behaves like Load but falls back to defaults plus environment
// when path does not exist.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return parse(nil)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env from each dir that has one. Variables already set in
// the process environment win.
func LoadDotEnv(dirs ...string) {
	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

// BaseDir returns the directory holding the running executable, or the
// working directory when that cannot be resolved.
func BaseDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	wd, _ := os.Getwd()
	return wd
}

func (c *Config) Validate() error {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGemini
	}
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.Model == "" {
			c.LLM.Model = "gemini-2.5-flash"
		}
	case ProviderOpenAI:
		if c.LLM.Model == "" {
			c.LLM.Model = "gpt-4o-mini"
		}
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("llm.max_tokens must not be negative")
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = providerKeyFromEnv(c.LLM.Provider)
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.Seek == "" {
		c.FFmpeg.Seek = "00:00:02"
	}

	if c.Paths.VideoExtension == "" {
		c.Paths.VideoExtension = ".mp4"
	}
	if !strings.HasPrefix(c.Paths.VideoExtension, ".") {
		c.Paths.VideoExtension = "." + c.Paths.VideoExtension
	}
	c.Paths.VideoExtension = strings.ToLower(c.Paths.VideoExtension)
	if c.Paths.Examples == "" {
		c.Paths.Examples = "100captions.txt"
	}

	if c.Generator.Quota < 0 || c.Generator.BatchSize < 0 || c.Generator.SampleSize < 0 {
		return fmt.Errorf("generator sizes must not be negative")
	}
	if c.Generator.Quota == 0 {
		c.Generator.Quota = 100
	}
	if c.Generator.BatchSize == 0 {
		c.Generator.BatchSize = 50
	}
	if c.Generator.SampleSize == 0 {
		c.Generator.SampleSize = 15
	}
	if c.Generator.MaxTokens == 0 {
		c.Generator.MaxTokens = 4096
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// RequireAPIKey fails when no credential was resolved.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// OutputDir returns paths.output, defaulting to <base>/extracted_captions.
func (c *Config) OutputDir(base string) string {
	if c.Paths.Output != "" {
		return c.Paths.Output
	}
	return filepath.Join(base, "extracted_captions")
}

// ExamplesPath resolves paths.examples against base when it is relative.
func (c *Config) ExamplesPath(base string) string {
	if filepath.IsAbs(c.Paths.Examples) {
		return c.Paths.Examples
	}
	return filepath.Join(base, c.Paths.Examples)
}

func providerKeyFromEnv(provider string) string {
	var keys []string
	switch provider {
	case ProviderGemini:
		keys = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	case ProviderOpenAI:
		keys = []string{"OPENAI_API_KEY"}
	}
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
