package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"fraudcli/internal/errors"
)

// Config represents the complete application configuration. Values resolve in
// order: built-in defaults, then the YAML config file, then FRAUD_* environment
// variables.
type Config struct {
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Model   ModelConfig   `yaml:"model" envconfig:"MODEL"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
}

// DataConfig contains input and output file paths.
type DataConfig struct {
	TrainingFile string `yaml:"training_file" envconfig:"TRAINING_FILE" validate:"required"`
	ScoringFile  string `yaml:"scoring_file" envconfig:"SCORING_FILE" validate:"required"`
	ModelFile    string `yaml:"model_file" envconfig:"MODEL_FILE" validate:"required"`
	OutputFile   string `yaml:"output_file" envconfig:"OUTPUT_FILE" validate:"required"`

	// Optional feature-matrix exports, written when non-empty.
	MatrixCSV  string `yaml:"matrix_csv" envconfig:"MATRIX_CSV"`
	MatrixXLSX string `yaml:"matrix_xlsx" envconfig:"MATRIX_XLSX"`
}

// ModelConfig contains training hyperparameters and pipeline options.
type ModelConfig struct {
	Trees               int     `yaml:"trees" envconfig:"TREES" validate:"min=1"`
	MaxDepth            int     `yaml:"max_depth" envconfig:"MAX_DEPTH" validate:"min=1"`
	MinLeafSamples      int     `yaml:"min_leaf_samples" envconfig:"MIN_LEAF_SAMPLES" validate:"min=1"`
	Seed                int64   `yaml:"seed" envconfig:"SEED"`
	TestFraction        float64 `yaml:"test_fraction" envconfig:"TEST_FRACTION" validate:"gt=0,lt=1"`
	ParallelAggregation bool    `yaml:"parallel_aggregation" envconfig:"PARALLEL_AGGREGATION"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ServerConfig contains the scoring API configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	MaxBatchSize    int           `yaml:"max_batch_size" envconfig:"MAX_BATCH_SIZE" validate:"min=1"`

	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Data: DataConfig{
			TrainingFile: "data/customers_training.json",
			ScoringFile:  "data/customers.json",
			ModelFile:    "data/fraud_model.json",
			OutputFile:   "data/predictions.json",
		},
		Model: ModelConfig{
			Trees:               100,
			MaxDepth:            12,
			MinLeafSamples:      1,
			Seed:                42,
			TestFraction:        0.2,
			ParallelAggregation: true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/fraudcli.log",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBatchSize:    10000,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when absent) and FRAUD_* environment variables, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, errors.NewConfigError("failed to read config file", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.NewConfigError("failed to parse config file", err)
			}
		}
	}

	if err := envconfig.Process("FRAUD", &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.NewConfigError("config validation failed", err)
	}
	return nil
}
