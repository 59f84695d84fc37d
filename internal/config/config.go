package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/diegok/botpong/internal/game"
	"github.com/diegok/botpong/internal/geom"
)

// Default values for configuration
const (
	DefaultFieldWidth  = 800.0
	DefaultFieldHeight = 600.0
	DefaultTickRate    = game.TickRate
	DefaultFrameRate   = 60
	DefaultPoints      = game.DefaultPoints
	DefaultLogLevel    = "info"
)

// Config holds the application configuration
type Config struct {
	Field  FieldConfig  `yaml:"field"`
	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`

	PointsToWin int `yaml:"points_to_win"`
	TickRate    int `yaml:"tick_rate"`
	FrameRate   int `yaml:"frame_rate"`

	Mute       bool   `yaml:"mute"`
	LogFile    string `yaml:"log_file"`
	LogLevel   string `yaml:"log_level"`
	RecordPath string `yaml:"record"`
}

type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PaddleConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	PlayerSpeed float64 `yaml:"player_speed"`
	BotSpeed    float64 `yaml:"bot_speed"`
}

type BallConfig struct {
	Size       float64 `yaml:"size"`
	ServeSpeed float64 `yaml:"serve_speed"`
}

// DefaultConfig returns the classic 800x600 setup ticking at 300 Hz
func DefaultConfig() *Config {
	return &Config{
		Field: FieldConfig{Width: DefaultFieldWidth, Height: DefaultFieldHeight},
		Paddle: PaddleConfig{
			Width:       game.DefaultPaddleW,
			Height:      game.DefaultPaddleH,
			PlayerSpeed: game.ManualSpeed,
			BotSpeed:    game.AutonomousSpeed,
		},
		Ball: BallConfig{
			Size:       game.DefaultBallW,
			ServeSpeed: game.DefaultServe,
		},
		PointsToWin: DefaultPoints,
		TickRate:    DefaultTickRate,
		FrameRate:   DefaultFrameRate,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BindFlags registers a flag for every tunable, writing into cfg. Values already
// in cfg become the flag defaults.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.Field.Width, "width", cfg.Field.Width, "field width")
	fs.Float64Var(&cfg.Field.Height, "height", cfg.Field.Height, "field height")
	fs.Float64Var(&cfg.Paddle.Width, "paddle-width", cfg.Paddle.Width, "paddle width (also the ball speed cap)")
	fs.Float64Var(&cfg.Paddle.Height, "paddle-height", cfg.Paddle.Height, "paddle height")
	fs.Float64Var(&cfg.Paddle.PlayerSpeed, "player-speed", cfg.Paddle.PlayerSpeed, "player paddle step per tick")
	fs.Float64Var(&cfg.Paddle.BotSpeed, "bot-speed", cfg.Paddle.BotSpeed, "bot paddle initial step per tick")
	fs.Float64Var(&cfg.Ball.Size, "ball-size", cfg.Ball.Size, "ball width and height")
	fs.Float64Var(&cfg.Ball.ServeSpeed, "serve-speed", cfg.Ball.ServeSpeed, "horizontal serve speed")
	fs.IntVar(&cfg.PointsToWin, "points", cfg.PointsToWin, "points that reset the match (>=1)")
	fs.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "simulation ticks per second")
	fs.IntVar(&cfg.FrameRate, "frame-rate", cfg.FrameRate, "rendered frames per second")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "disable sound")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&cfg.RecordPath, "record", cfg.RecordPath, "record the match to this file")
}

// Resolve layers the flags explicitly set on fs over the YAML file at path.
// With no path the flag-bound config is returned as is.
func Resolve(path string, fs *pflag.FlagSet, flagged *Config) (*Config, error) {
	if path == "" {
		return flagged, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	over := pflag.NewFlagSet("overrides", pflag.ContinueOnError)
	BindFlags(over, cfg)
	var setErr error
	fs.Visit(func(f *pflag.Flag) {
		if setErr != nil || over.Lookup(f.Name) == nil {
			return
		}
		if err := over.Set(f.Name, f.Value.String()); err != nil {
			setErr = fmt.Errorf("invalid --%s: %w", f.Name, err)
		}
	})
	if setErr != nil {
		return nil, setErr
	}
	return cfg, nil
}

// Validate checks that sizes and rates are usable
func (c *Config) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("field must have a positive size, got %gx%g", c.Field.Width, c.Field.Height)
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		return fmt.Errorf("paddle must have a positive size, got %gx%g", c.Paddle.Width, c.Paddle.Height)
	}
	if c.Paddle.Height > c.Field.Height {
		return fmt.Errorf("paddle height %g exceeds field height %g", c.Paddle.Height, c.Field.Height)
	}
	if c.Paddle.PlayerSpeed < 0 || c.Paddle.BotSpeed < 0 {
		return errors.New("paddle speeds cannot be negative")
	}
	if c.Ball.Size <= 0 {
		return fmt.Errorf("ball size must be positive, got %g", c.Ball.Size)
	}
	if c.Ball.ServeSpeed <= 0 {
		return fmt.Errorf("serve speed must be positive, got %g", c.Ball.ServeSpeed)
	}
	if c.PointsToWin < 1 {
		return fmt.Errorf("points must be at least 1, got %d", c.PointsToWin)
	}
	if c.TickRate < 1 {
		return fmt.Errorf("tick rate must be at least 1, got %d", c.TickRate)
	}
	if c.FrameRate < 1 {
		return fmt.Errorf("frame rate must be at least 1, got %d", c.FrameRate)
	}
	return nil
}

// Setup converts the config into a match setup
func (c *Config) Setup() game.Setup {
	return game.Setup{
		Field:       geom.NewRect(0, 0, c.Field.Width, c.Field.Height),
		PaddleSize:  geom.Vec(c.Paddle.Width, c.Paddle.Height),
		BallSize:    geom.Vec(c.Ball.Size, c.Ball.Size),
		PlayerSpeed: c.Paddle.PlayerSpeed,
		BotSpeed:    c.Paddle.BotSpeed,
		ServeSpeed:  c.Ball.ServeSpeed,
		PointsToWin: c.PointsToWin,
	}
}
