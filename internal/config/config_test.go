package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vals map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vals[k]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	c, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, ":8080", c.Addr())
}

func TestFromEnv_Overrides(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"PORT":            "9000",
		"ALLOWED_ORIGINS": "http://a.example, https://b.example ,",
		"MAX_PLAYERS":     "4",
		"TURN_TIMEOUT":    "0",
		"TRADE_OFFER_TTL": "30s",
		"MESSAGE_RATE":    "2.5",
		"MESSAGE_BURST":   "5",
		"DATABASE_URL":    "postgres://localhost/monopoly",
		"REDIS_ADDR":      "localhost:6379",
		"LOG_LEVEL":       "debug",
		"LOG_DEV":         "true",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, []string{"http://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.Equal(t, 4, c.MaxPlayers)
	assert.Zero(t, c.TurnTimeout)
	assert.Equal(t, 30*time.Second, c.TradeOfferTTL)
	assert.Equal(t, 2.5, c.MessageRate)
	assert.Equal(t, 5, c.MessageBurst)
	assert.Equal(t, "postgres://localhost/monopoly", c.DatabaseURL)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, "monopoly:actions", c.RedisKey)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.LogDev)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"not a number", map[string]string{"MAX_PLAYERS": "six"}, "MAX_PLAYERS"},
		{"too many players", map[string]string{"MAX_PLAYERS": "9"}, "between 2 and 8"},
		{"bad duration", map[string]string{"TURN_TIMEOUT": "soon"}, "TURN_TIMEOUT"},
		{"negative ttl", map[string]string{"TRADE_OFFER_TTL": "-1s"}, "TRADE_OFFER_TTL"},
		{"bad bool", map[string]string{"LOG_DEV": "maybe"}, "LOG_DEV"},
		{"zero rate", map[string]string{"MESSAGE_RATE": "0"}, "MESSAGE_RATE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromEnv(env(tc.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7070\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("MAX_PLAYERS", "3")
	// godotenv never overrides a variable that is already set, so PORT
	// must be absent. t.Setenv restores it afterwards.
	t.Setenv("PORT", "")
	require.NoError(t, os.Unsetenv("PORT"))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", c.Port)
	assert.Equal(t, 3, c.MaxPlayers)
}
