package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/fragbots/internal/ai"
	"github.com/udisondev/fragbots/internal/model"
)

// EnvPath overrides the config file path.
const EnvPath = "FRAGBOTS_CONFIG"

// DefaultPath is used when neither a flag nor EnvPath gives a config path.
const DefaultPath = "config/botserver.yaml"

// BotServer holds all configuration for the headless bot server.
type BotServer struct {
	LogLevel string `yaml:"log_level"`

	// Arena layout file; empty means the built-in duel layout.
	Layout string `yaml:"layout"`

	Database DatabaseConfig `yaml:"database"`
	Tick     TickConfig     `yaml:"tick"`
	AI       AIConfig       `yaml:"ai"`
	Events   EventsConfig   `yaml:"events"`
	Debug    DebugView      `yaml:"debug"`

	// Bots are used when the database is disabled or has no enabled profiles.
	Bots []BotEntry `yaml:"bots"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// TickConfig controls the frame loop.
type TickConfig struct {
	Interval time.Duration `yaml:"interval"`
	Shards   int           `yaml:"shards"` // goroutines thinking bots per frame
}

// EventsConfig controls goal event persistence.
type EventsConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	QueueSize     int           `yaml:"queue_size"`
}

// DebugView configures the websocket introspection stream.
type DebugView struct {
	Enabled      bool          `yaml:"enabled"`
	Addr         string        `yaml:"addr"`
	JWTSecret    string        `yaml:"jwt_secret"`
	Issuer       string        `yaml:"issuer"`
	PushInterval time.Duration `yaml:"push_interval"`
}

// BotEntry is a bot profile declared in the config file.
type BotEntry struct {
	Name  string   `yaml:"name"`
	Skill float64  `yaml:"skill"`
	Moves []string `yaml:"moves"`
}

// Profile converts the entry into a bot profile.
func (b BotEntry) Profile() (model.BotProfile, error) {
	mask, err := model.ParseMoveMask(b.Moves)
	if err != nil {
		return model.BotProfile{}, fmt.Errorf("bot %q: %w", b.Name, err)
	}
	return model.BotProfile{Name: b.Name, Skill: b.Skill, MoveMask: mask, Enabled: true}, nil
}

// AIConfig holds decision tunables. Zero values fall back to ai defaults.
type AIConfig struct {
	StrictContracts bool `yaml:"strict_contracts"`
	DebugLogging    bool `yaml:"debug_logging"`

	LongGoalPeriod  time.Duration `yaml:"long_goal_period"`
	LongGoalJitter  time.Duration `yaml:"long_goal_jitter"`
	LongGoalTimeout time.Duration `yaml:"long_goal_timeout"`

	ShortGoalDelay     time.Duration `yaml:"short_goal_delay"`
	ShortGoalIdleDelay time.Duration `yaml:"short_goal_idle_delay"`
	ShortGoalRadius    float64       `yaml:"short_goal_radius"`

	SpawnFreshness    time.Duration `yaml:"spawn_freshness"`
	MaxGoalCandidates int           `yaml:"max_goal_candidates"`
	MoveTimeWeight    float64       `yaml:"move_time_weight"`
	WaitTimeWeight    float64       `yaml:"wait_time_weight"`

	WeaponChoicePeriod time.Duration `yaml:"weapon_choice_period"`
	AimCacheTTL        time.Duration `yaml:"aim_cache_ttl"`
	EnemyForgetTime    time.Duration `yaml:"enemy_forget_time"`
}

// Config returns ai tunables with the overrides applied.
func (c AIConfig) Config() ai.Config {
	cfg := ai.DefaultConfig()
	setDuration(&cfg.LongGoalPeriod, c.LongGoalPeriod)
	setDuration(&cfg.LongGoalJitter, c.LongGoalJitter)
	setDuration(&cfg.LongGoalTimeout, c.LongGoalTimeout)
	setDuration(&cfg.ShortGoalDelay, c.ShortGoalDelay)
	setDuration(&cfg.ShortGoalIdleDelay, c.ShortGoalIdleDelay)
	setDuration(&cfg.SpawnFreshness, c.SpawnFreshness)
	setDuration(&cfg.WeaponChoicePeriod, c.WeaponChoicePeriod)
	setDuration(&cfg.AimCacheTTL, c.AimCacheTTL)
	setDuration(&cfg.EnemyForgetTime, c.EnemyForgetTime)
	if c.ShortGoalRadius > 0 {
		cfg.ShortGoalRadius = c.ShortGoalRadius
		cfg.ShortGoalLongRadius = 2 * c.ShortGoalRadius
	}
	if c.MaxGoalCandidates > 0 {
		cfg.MaxGoalCandidates = c.MaxGoalCandidates
	}
	if c.MoveTimeWeight > 0 {
		cfg.MoveTimeWeight = c.MoveTimeWeight
	}
	if c.WaitTimeWeight > 0 {
		cfg.WaitTimeWeight = c.WaitTimeWeight
	}
	return cfg
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

// DefaultBotServer returns BotServer config with sensible defaults.
func DefaultBotServer() BotServer {
	return BotServer{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "fragbots",
			Password: "fragbots",
			DBName:   "fragbots",
			SSLMode:  "disable",
		},
		Tick: TickConfig{
			Interval: 50 * time.Millisecond,
			Shards:   1,
		},
		Events: EventsConfig{
			BatchSize:     256,
			FlushInterval: 2 * time.Second,
			QueueSize:     4096,
		},
		Debug: DebugView{
			Addr:         "127.0.0.1:8088",
			Issuer:       "fragbots",
			PushInterval: 250 * time.Millisecond,
		},
		Bots: []BotEntry{
			{Name: "Visor", Skill: 0.6, Moves: []string{"walk", "jump"}},
			{Name: "Sarge", Skill: 0.4, Moves: []string{"walk", "jump", "rocketjump"}},
		},
	}
}

// Path returns the config path: the EnvPath variable wins over fallback.
func Path(fallback string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if fallback == "" {
		return DefaultPath
	}
	return fallback
}

// LoadBotServer loads bot server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadBotServer(path string) (BotServer, error) {
	cfg := DefaultBotServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that have no usable fallback.
func (c BotServer) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Tick.Interval <= 0 {
		return errors.New("tick.interval must be positive")
	}
	if c.Debug.Enabled && c.Debug.JWTSecret == "" {
		return errors.New("debug.jwt_secret is required when the debug view is enabled")
	}
	for _, b := range c.Bots {
		if b.Name == "" {
			return errors.New("bot without name")
		}
		if b.Skill < 0 || b.Skill > 1 {
			return fmt.Errorf("bot %q: skill %.2f out of [0, 1]", b.Name, b.Skill)
		}
		if _, err := model.ParseMoveMask(b.Moves); err != nil {
			return fmt.Errorf("bot %q: %w", b.Name, err)
		}
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c BotServer) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
