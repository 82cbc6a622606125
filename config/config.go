package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"voicecoach/api-gateway/internal/feedback"
	"voicecoach/api-gateway/internal/speech"
)

// SpeechSettings configures the speech-to-text backend.
type SpeechSettings struct {
	Backend  string        `mapstructure:"backend" validate:"oneof=openai http"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	Language string        `mapstructure:"language"`
	URL      string        `mapstructure:"url" validate:"required_if=Backend http"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// FeedbackSettings configures the coaching-feedback model.
type FeedbackSettings struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model" validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// Config is the service configuration. Every key can be set through an
// environment variable named after its path, e.g. speech.backend is
// SPEECH_BACKEND.
type Config struct {
	Port           string        `mapstructure:"port" validate:"required"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format" validate:"oneof=json text"`
	CORSOrigins    string        `mapstructure:"cors_origins"`
	MaxUploadMB    int           `mapstructure:"max_upload_mb" validate:"gte=1"`
	AnalyzeTimeout time.Duration `mapstructure:"analyze_timeout" validate:"gt=0"`
	Workers        int           `mapstructure:"workers" validate:"gte=1"`
	QueueSize      int           `mapstructure:"queue_size" validate:"gte=1"`

	DefaultDurationSeconds float64 `mapstructure:"default_duration_seconds" validate:"gte=0"`
	ProbeDuration          bool    `mapstructure:"probe_duration"`
	FFProbePath            string  `mapstructure:"ffprobe_path"`

	ScoringConfig  string `mapstructure:"scoring_config"`
	GRPCHealthAddr string `mapstructure:"grpc_health_addr"`

	Speech   SpeechSettings   `mapstructure:"speech"`
	Feedback FeedbackSettings `mapstructure:"feedback"`
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("max_upload_mb", 25)
	v.SetDefault("analyze_timeout", "90s")
	v.SetDefault("workers", 4)
	v.SetDefault("queue_size", 32)
	v.SetDefault("default_duration_seconds", 60.0)
	v.SetDefault("probe_duration", true)
	v.SetDefault("ffprobe_path", "ffprobe")
	v.SetDefault("scoring_config", "")
	v.SetDefault("grpc_health_addr", "")

	v.SetDefault("speech.backend", speech.BackendOpenAI)
	v.SetDefault("speech.base_url", "")
	v.SetDefault("speech.model", "whisper-1")
	v.SetDefault("speech.language", "en")
	v.SetDefault("speech.url", "")
	v.SetDefault("speech.timeout", "60s")

	v.SetDefault("feedback.base_url", feedback.DefaultBaseURL)
	v.SetDefault("feedback.model", feedback.DefaultModel)
	v.SetDefault("feedback.temperature", 0.7)
	v.SetDefault("feedback.timeout", "60s")
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are reported through the returned bool, not as an error.
func LoadDotEnv(paths ...string) (bool, error) {
	err := godotenv.Load(paths...)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("load env file: %w", err)
}

// Load reads the configuration from the environment and, when configFile
// is not empty, from that file. Environment variables win over the file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys shared with other tools get a second, provider-named variable.
	if err := v.BindEnv("speech.api_key", "SPEECH_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("feedback.api_key", "FEEDBACK_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Speech.Backend = strings.ToLower(strings.TrimSpace(cfg.Speech.Backend))

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// SpeechConfig converts the settings for speech.New.
func (c *Config) SpeechConfig() speech.Config {
	return speech.Config{
		Backend:    c.Speech.Backend,
		APIKey:     c.Speech.APIKey,
		BaseURL:    c.Speech.BaseURL,
		Model:      c.Speech.Model,
		Language:   c.Speech.Language,
		ServiceURL: c.Speech.URL,
		Timeout:    c.Speech.Timeout,
	}
}

// FeedbackConfig converts the settings for feedback.NewGenerator.
func (c *Config) FeedbackConfig() feedback.Config {
	return feedback.Config{
		APIKey:      c.Feedback.APIKey,
		BaseURL:     c.Feedback.BaseURL,
		Model:       c.Feedback.Model,
		Temperature: c.Feedback.Temperature,
		Timeout:     c.Feedback.Timeout,
	}
}

// BodyLimit is the maximum request body size in bytes.
func (c *Config) BodyLimit() int {
	return c.MaxUploadMB * 1024 * 1024
}
