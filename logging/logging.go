package logging

import (
	"flag"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

type Config struct {
	Level string
}

func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("", f)
}

func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Level, prefix+"log.level", "warn", "Only log messages with the given severity or above. One of: debug, info, warn, error.")
}

func (cfg *Config) Validate() error {
	_, err := parseLevel(cfg.Level)
	return err
}

func parseLevel(s string) (level.Option, error) {
	switch s {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "", "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, errors.Errorf("unrecognized log level %q", s)
}

// New returns a logfmt logger writing to w, filtered at cfg.Level.
func New(cfg Config, w io.Writer) (log.Logger, error) {
	opt, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "caller", log.DefaultCaller), nil
}

// Default logs warnings and errors to stderr.
var Default = func() log.Logger {
	l, _ := New(Config{Level: "warn"}, os.Stderr)
	return l
}()
