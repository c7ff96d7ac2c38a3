// Package config reads server settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	AllowedOrigins  []string
	MaxPlayers      int
	TurnTimeout     time.Duration
	TradeOfferTTL   time.Duration
	MessageRate     float64
	MessageBurst    int
	DatabaseURL     string
	RedisAddr       string
	RedisKey        string
	LogLevel        string
	LogDev          bool
	ShutdownTimeout time.Duration
}

func Default() Config {
	return Config{
		Port:            "8080",
		AllowedOrigins:  []string{"http://localhost:3000"},
		MaxPlayers:      6,
		TurnTimeout:     90 * time.Second,
		TradeOfferTTL:   5 * time.Minute,
		MessageRate:     10,
		MessageBurst:    20,
		RedisKey:        "monopoly:actions",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load applies .env (if any) and the environment on top of Default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup without touching .env files.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	p := parser{lookup: lookup}

	p.str("PORT", &c.Port)
	if v, ok := lookup("ALLOWED_ORIGINS"); ok {
		c.AllowedOrigins = splitList(v)
	}
	p.int("MAX_PLAYERS", &c.MaxPlayers)
	p.duration("TURN_TIMEOUT", &c.TurnTimeout)
	p.duration("TRADE_OFFER_TTL", &c.TradeOfferTTL)
	p.float("MESSAGE_RATE", &c.MessageRate)
	p.int("MESSAGE_BURST", &c.MessageBurst)
	p.str("DATABASE_URL", &c.DatabaseURL)
	p.str("REDIS_ADDR", &c.RedisAddr)
	p.str("REDIS_KEY", &c.RedisKey)
	p.str("LOG_LEVEL", &c.LogLevel)
	p.bool("LOG_DEV", &c.LogDev)
	p.duration("SHUTDOWN_TIMEOUT", &c.ShutdownTimeout)

	if p.err != nil {
		return Config{}, p.err
	}
	return c, c.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.MaxPlayers < 2 || c.MaxPlayers > 8 {
		errs = append(errs, fmt.Errorf("MAX_PLAYERS must be between 2 and 8, got %d", c.MaxPlayers))
	}
	if c.TurnTimeout < 0 {
		errs = append(errs, errors.New("TURN_TIMEOUT must not be negative"))
	}
	if c.TradeOfferTTL < 0 {
		errs = append(errs, errors.New("TRADE_OFFER_TTL must not be negative"))
	}
	if c.MessageRate <= 0 {
		errs = append(errs, errors.New("MESSAGE_RATE must be positive"))
	}
	if c.MessageBurst <= 0 {
		errs = append(errs, errors.New("MESSAGE_BURST must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string { return ":" + c.Port }

type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (p *parser) fail(key, v string, err error) {
	p.err = errors.Join(p.err, fmt.Errorf("%s=%q: %w", key, v, err))
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) int(key string, dst *int) {
	v, ok := p.get(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = n
}

func (p *parser) float(key string, dst *float64) {
	v, ok := p.get(key)
	if !ok || v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = f
}

func (p *parser) bool(key string, dst *bool) {
	v, ok := p.get(key)
	if !ok || v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = b
}

// duration accepts Go durations and a bare "0" to disable.
func (p *parser) duration(key string, dst *time.Duration) {
	v, ok := p.get(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
