// Package logger holds the process-wide zerolog logger. Call Init once from
// main; packages receive children of it through Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger built by Init.
type Options struct {
	Level   string    // trace, debug, info, warn or error; info when unknown
	Pretty  bool      // console output for local development
	Output  io.Writer // os.Stdout when nil
	Service string    // "service" field on every event when set
}

var (
	mu   sync.RWMutex
	root *zerolog.Logger
	once sync.Once
)

// Init builds the shared logger. Only the first call configures it; later
// calls return the existing logger.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		l := zerolog.New(writer(opts)).Level(lvl).With().Timestamp().Caller()
		if opts.Service != "" {
			l = l.Str("service", opts.Service)
		}
		built := l.Logger()

		mu.Lock()
		root = &built
		mu.Unlock()
	})
	return Get()
}

func writer(opts Options) io.Writer {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return out
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Get returns the shared logger and panics before Init.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if root == nil {
		panic("logger: Get() called before Init()")
	}
	return *root
}

// Reset discards the shared logger so tests can call Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = nil
	once = sync.Once{}
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || lvl > zerolog.ErrorLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
