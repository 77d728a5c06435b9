package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env           string    `mapstructure:"env"`             // current application environment (local, dev, production)
	BestScorePath string    `mapstructure:"best_score_path"` // path to the file with the persisted best score
	Questions     Questions `mapstructure:"questions"`       // question bank section
	Rotation      Rotation  `mapstructure:"rotation"`        // question rotation policy
	Game          Game      `mapstructure:"game"`            // per-session game rules
}

// Questions configures the question bank file.
type Questions struct {
	Path  string `mapstructure:"path"`  // JSON-lines question file
	Watch bool   `mapstructure:"watch"` // reload the bank when the file changes on disk
}

// Rotation contains parameters of the next-question policy.
type Rotation struct {
	Cooldown              time.Duration `mapstructure:"cooldown"`               // minimum gap before a trivia question reappears
	ArithmeticProbability float64       `mapstructure:"arithmetic_probability"` // chance of generating an arithmetic question
	MaxRerolls            int           `mapstructure:"max_rerolls"`            // re-rolls before falling back to arithmetic
	OperandMin            int           `mapstructure:"operand_min"`
	OperandMax            int           `mapstructure:"operand_max"`
}

// Game contains session rules.
type Game struct {
	Lives         int           `mapstructure:"lives"`          // lives at the start of a session
	AnswerTimeout int           `mapstructure:"answer_timeout"` // countdown ticks per question
	TickInterval  time.Duration `mapstructure:"tick_interval"`  // duration of one countdown tick
}

// Validate reports whether the configuration can drive a game.
func (c *Config) Validate() error {
	switch {
	case c.Questions.Path == "":
		return fmt.Errorf("%w: questions.path is empty", ErrInvalidConfig)
	case c.BestScorePath == "":
		return fmt.Errorf("%w: best_score_path is empty", ErrInvalidConfig)
	case c.Rotation.Cooldown < 0:
		return fmt.Errorf("%w: rotation.cooldown must not be negative", ErrInvalidConfig)
	case c.Rotation.ArithmeticProbability < 0 || c.Rotation.ArithmeticProbability > 1:
		return fmt.Errorf("%w: rotation.arithmetic_probability must be within [0, 1]", ErrInvalidConfig)
	case c.Rotation.MaxRerolls < 0:
		return fmt.Errorf("%w: rotation.max_rerolls must not be negative", ErrInvalidConfig)
	case c.Rotation.OperandMin > c.Rotation.OperandMax:
		return fmt.Errorf("%w: rotation.operand_min is greater than operand_max", ErrInvalidConfig)
	case c.Game.Lives <= 0:
		return fmt.Errorf("%w: game.lives must be positive", ErrInvalidConfig)
	case c.Game.AnswerTimeout <= 0:
		return fmt.Errorf("%w: game.answer_timeout must be positive", ErrInvalidConfig)
	case c.Game.TickInterval <= 0:
		return fmt.Errorf("%w: game.tick_interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine, variables may come from the real environment.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvPrefix("quiz")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("best_score_path", "best_score.txt")
	v.SetDefault("questions.path", "questions.txt")
	v.SetDefault("questions.watch", true)
	v.SetDefault("rotation.cooldown", "90s")
	v.SetDefault("rotation.arithmetic_probability", 0.5)
	v.SetDefault("rotation.max_rerolls", 10)
	v.SetDefault("rotation.operand_min", 1)
	v.SetDefault("rotation.operand_max", 20)
	v.SetDefault("game.lives", 3)
	v.SetDefault("game.answer_timeout", 15)
	v.SetDefault("game.tick_interval", "1s")
}
