package config

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/hoopbot/internal/core/observability/log"
	"github.com/zeusync/hoopbot/internal/core/shot"
)

// Config is the process configuration. The rule base itself is compiled in
// and cannot be changed here.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Seed       int64            `yaml:"seed"`
	Play       PlayConfig       `yaml:"play"`
	Feed       FeedConfig       `yaml:"feed"`
	Simulation SimulationConfig `yaml:"simulation"`
	Shots      ShotRanges       `yaml:"shots"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type PlayConfig struct {
	TickRate int `yaml:"tick_rate"`
	// Pause is the idle time between two shots.
	Pause time.Duration `yaml:"pause"`
	// Shots stops the loop after that many shots; 0 runs until cancelled.
	Shots int `yaml:"shots"`
}

type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
	// AllowedOrigins is empty to accept any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type SimulationConfig struct {
	Shots   int `yaml:"shots"`
	Workers int `yaml:"workers"`
}

type ShotRanges struct {
	Distance shot.Range `yaml:"distance"`
	Angle    shot.Range `yaml:"angle"`
	Force    shot.Range `yaml:"force"`
}

// Default returns a configuration that needs no file.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Encoding: "console"},
		Play: PlayConfig{
			TickRate: 60,
			Pause:    2 * time.Second,
		},
		Feed: FeedConfig{
			Addr: ":8080",
			Path: "/ws",
		},
		Simulation: SimulationConfig{
			Shots:   10_000,
			Workers: runtime.GOMAXPROCS(0),
		},
		Shots: ShotRanges{
			Distance: shot.DefaultDistanceRange,
			Angle:    shot.DefaultAngleRange,
			Force:    shot.DefaultForceRange,
		},
	}
}

// Load reads a YAML file on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer func() { _ = f.Close() }()

	if err = Decode(f, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg and validates the result.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "decode yaml")
	}
	return cfg.Validate()
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return errors.Errorf("log.encoding must be json or console, got %q", c.Log.Encoding)
	}
	if c.Play.TickRate <= 0 {
		return errors.Errorf("play.tick_rate must be positive, got %d", c.Play.TickRate)
	}
	if c.Play.Pause < 0 {
		return errors.Errorf("play.pause must not be negative, got %s", c.Play.Pause)
	}
	if c.Play.Shots < 0 {
		return errors.Errorf("play.shots must not be negative, got %d", c.Play.Shots)
	}
	if c.Feed.Enabled && c.Feed.Addr == "" {
		return errors.New("feed.addr is required when the feed is enabled")
	}
	if c.Simulation.Shots <= 0 {
		return errors.Errorf("simulation.shots must be positive, got %d", c.Simulation.Shots)
	}
	if c.Simulation.Workers <= 0 {
		return errors.Errorf("simulation.workers must be positive, got %d", c.Simulation.Workers)
	}

	for name, r := range map[string]shot.Range{
		"shots.distance": c.Shots.Distance,
		"shots.angle":    c.Shots.Angle,
		"shots.force":    c.Shots.Force,
	} {
		if r.Min > r.Max {
			return errors.Errorf("%s: min %g exceeds max %g", name, r.Min, r.Max)
		}
	}
	return nil
}

// Logger builds the zap-backed logger described by the log section.
func (c Config) Logger() (*log.Logger, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(log.Options{Level: level, Encoding: c.Log.Encoding})
}

// TickInterval is the wall-clock duration of one frame.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Play.TickRate)
}

// EffectiveSeed returns Seed, or a time-derived seed when Seed is 0.
func (c Config) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
