// Package config loads blockfall settings from YAML, layered over defaults and validated
// before use.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the full runtime configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Tick    time.Duration `yaml:"tick" validate:"gt=0"`
	Seed    uint64        `yaml:"seed"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Window  WindowConfig  `yaml:"window"`
}

// BoardConfig sets the grid dimensions.
type BoardConfig struct {
	Rows int `yaml:"rows" validate:"gt=0,lte=200"`
	Cols int `yaml:"cols" validate:"gt=0,lte=200"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// MetricsConfig controls the prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// WindowConfig controls the graphical front end.
type WindowConfig struct {
	CellSize int  `yaml:"cell_size" validate:"gte=4,lte=128"`
	Debug    bool `yaml:"debug"`
}

// Default returns the canonical 20×10 board with a 300ms tick.
func Default() Config {
	return Config{
		Board: BoardConfig{Rows: 20, Cols: 10},
		Tick:  300 * time.Millisecond,
		Log:   LogConfig{Level: "info", Format: "text"},
		Window: WindowConfig{
			CellSize: 30,
		},
	}
}

// Load reads path over the defaults and validates the result. An empty path returns the
// validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode merges YAML from r into cfg. Unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Logger builds a slog logger writing to w according to the log settings.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch l.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
