package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/x4d3/gomoku/driver"
)

type Config struct {
	Addr            string `json:"addr"`
	GhostMode       bool   `json:"ghost_mode"`
	TickMs          int    `json:"tick_ms"`
	AiDelayMs       int    `json:"ai_delay_ms"`
	AiToggleDelayMs int    `json:"ai_toggle_delay_ms"`
	BlackType       string `json:"black_type"`
	WhiteType       string `json:"white_type"`
	LogLevel        string `json:"log_level"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		Addr:      ":8080",
		GhostMode: false,

		// Driver loop period; the AI only moves once its deadline passes.
		TickMs:          50,
		AiDelayMs:       int(driver.DefaultAiDelay / time.Millisecond),
		AiToggleDelayMs: int(driver.DefaultAiToggleDelay / time.Millisecond),

		BlackType: "human",
		WhiteType: "ai",
		LogLevel:  "info",
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

// LoadConfig reads an optional dotenv file, then applies GOMOKU_* variables
// on top of DefaultConfig. A missing file is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg := DefaultConfig()
	if v, ok := os.LookupEnv("GOMOKU_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("GOMOKU_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("GOMOKU_BLACK"); ok && v != "" {
		cfg.BlackType = v
	}
	if v, ok := os.LookupEnv("GOMOKU_WHITE"); ok && v != "" {
		cfg.WhiteType = v
	}
	if err := envBool("GOMOKU_GHOST_MODE", &cfg.GhostMode); err != nil {
		return Config{}, err
	}
	for key, dst := range map[string]*int{
		"GOMOKU_TICK_MS":            &cfg.TickMs,
		"GOMOKU_AI_DELAY_MS":        &cfg.AiDelayMs,
		"GOMOKU_AI_TOGGLE_DELAY_MS": &cfg.AiToggleDelayMs,
	} {
		if err := envInt(key, dst); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMs)
	}
	if c.AiDelayMs < 0 || c.AiToggleDelayMs < 0 {
		return fmt.Errorf("ai delays must not be negative")
	}
	if _, err := driver.ParsePlayerType(c.BlackType); err != nil {
		return fmt.Errorf("black_type: %w", err)
	}
	if _, err := driver.ParsePlayerType(c.WhiteType); err != nil {
		return fmt.Errorf("white_type: %w", err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// MergeConfig overlays a partial JSON config onto base. Fields missing from
// raw keep their base values. The listen address is fixed once serving.
func MergeConfig(base Config, raw []byte) (Config, error) {
	merged := base
	if err := json.Unmarshal(raw, &merged); err != nil {
		return base, fmt.Errorf("decode config: %w", err)
	}
	if merged.Addr != base.Addr {
		return base, fmt.Errorf("addr cannot change while serving")
	}
	if err := merged.Validate(); err != nil {
		return base, err
	}
	return merged, nil
}

// WithSettings mirrors the driver settings in effect into the config.
func (c Config) WithSettings(settings driver.Settings) Config {
	c.BlackType = settings.BlackType.String()
	c.WhiteType = settings.WhiteType.String()
	c.AiDelayMs = int(settings.AiDelay / time.Millisecond)
	c.AiToggleDelayMs = int(settings.AiToggleDelay / time.Millisecond)
	return c
}

// DriverSettings converts a validated config into driver settings.
func (c Config) DriverSettings() driver.Settings {
	settings := driver.DefaultSettings()
	if t, err := driver.ParsePlayerType(c.BlackType); err == nil {
		settings.BlackType = t
	}
	if t, err := driver.ParsePlayerType(c.WhiteType); err == nil {
		settings.WhiteType = t
	}
	settings.AiDelay = time.Duration(c.AiDelayMs) * time.Millisecond
	settings.AiToggleDelay = time.Duration(c.AiToggleDelayMs) * time.Millisecond
	return settings
}

func envInt(key string, dst *int) error {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = value
	return nil
}

func envBool(key string, dst *bool) error {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = value
	return nil
}
