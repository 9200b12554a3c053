package app

import (
	"flag"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Scale    int
	TPS      int
	Seed     int64
	Width    int
	Height   int
	LogLevel string
	Set      KeyValues
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 1, TPS: 10, Seed: 0, Width: 960, Height: 540, LogLevel: "info", Set: KeyValues{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "window scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 keeps the configured seed)")
	fs.IntVar(&c.Width, "width", c.Width, "logical width of the cross-section in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "logical height of the cross-section in pixels")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.Var(&c.Set, "set", "override a model setting as key=value (repeatable)")
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// KeyValues collects repeated key=value flags.
type KeyValues map[string]string

// String renders the pairs sorted by key.
func (kv KeyValues) String() string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + kv[k]
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair; comma-separated lists are accepted too.
func (kv *KeyValues) Set(raw string) error {
	if *kv == nil {
		*kv = KeyValues{}
	}
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", pair)
		}
		(*kv)[key] = strings.TrimSpace(value)
	}
	return nil
}
