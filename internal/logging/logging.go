// Package logging configures the process-wide zerolog logger used by
// the command-line tools in cmd/. It mirrors the profile/env-override
// shape of a typical service in this codebase, but talks to zerolog
// directly rather than through an internal wrapper.
package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "XENWIRE_LOG_LEVEL"
	EnvLogNoColor = "XENWIRE_LOG_NOCOLOR"
)

// Profile selects the default level/format for a logging context.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

var configureOnce sync.Once

// Logger is the process-wide logger, set once by Configure.
var Logger zerolog.Logger

// ConfigureRuntime configures the logger for normal process use.
func ConfigureRuntime(app string) {
	Configure(ProfileRuntime, app)
}

// ConfigureTests configures the logger for table-driven tests: debug
// level and uncolored output.
func ConfigureTests(app string) {
	Configure(ProfileTest, app)
}

// Configure sets up the process-wide logger exactly once; later calls
// are no-ops, matching the once-per-process contract the rest of this
// codebase's services rely on.
func Configure(profile Profile, app string) {
	configureOnce.Do(func() {
		level := defaultLevel(profile)
		if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
			level = lvl
		}
		noColor := profile == ProfileTest
		if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
			noColor = v
		}

		zerolog.SetGlobalLevel(level)
		Logger = zerolog.New(consoleWriter(profile, noColor)).With().
			Timestamp().
			Str("app", app).
			Logger()
	})
}

func consoleWriter(profile Profile, noColor bool) zerolog.ConsoleWriter {
	out := os.Stdout
	var w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: noColor}
	if profile == ProfileRuntime && !noColor && isatty.IsTerminal(out.Fd()) {
		w.Out = colorable.NewColorable(out)
	}
	return w
}

func defaultLevel(profile Profile) zerolog.Level {
	if profile == ProfileTest {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
