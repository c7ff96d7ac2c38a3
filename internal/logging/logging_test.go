package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		level string
		dev   bool
		want  zap.AtomicLevel
	}{
		{"info", false, zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"debug", true, zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"warn", false, zap.NewAtomicLevelAt(zap.WarnLevel)},
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			log, err := New(tc.level, tc.dev)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tc.want.Level()))
			assert.False(t, log.Core().Enabled(tc.want.Level()-1))
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.ErrorContains(t, err, "loud")
}
