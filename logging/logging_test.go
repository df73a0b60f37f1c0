package logging_test

import (
	"bytes"
	"flag"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/vecreturn/logging"
)

func TestNew_filters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "warn"}, &buf)
	require.NoError(t, err)

	level.Info(logger).Log("msg", "hidden")
	level.Error(logger).Log("msg", "shown", "size", 16)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "size=16")
}

func TestConfig_flags(t *testing.T) {
	var cfg logging.Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.Equal(t, "warn", cfg.Level)

	require.NoError(t, fs.Parse([]string{"-log.level=debug"}))
	require.Equal(t, "debug", cfg.Level)
	require.NoError(t, cfg.Validate())

	cfg.Level = "loud"
	require.Error(t, cfg.Validate())
	_, err := logging.New(cfg, &bytes.Buffer{})
	require.Error(t, err)
}
