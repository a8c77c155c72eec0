// ABOUTME: Tests for log level parsing and logger construction.
// ABOUTME: Uses logrus test hooks to capture entries.
package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logrus.Level
		wantErr bool
	}{
		{"debug", logrus.DebugLevel, false},
		{"INFO", logrus.InfoLevel, false},
		{"", logrus.InfoLevel, false},
		{"warn", logrus.WarnLevel, false},
		{"warning", logrus.WarnLevel, false},
		{"error", logrus.ErrorLevel, false},
		{"fatal", logrus.FatalLevel, false},
		{"verbose", logrus.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestNewSetsLevel(t *testing.T) {
	log, err := New("warn")
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	_, err = New("loud")
	assert.Error(t, err)
}

func TestDiscardStillFiresHooks(t *testing.T) {
	log := Discard()
	hook := test.NewLocal(log)

	log.Info("hello")
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "hello", hook.LastEntry().Message)
}
