package orbits

import (
	"io"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// NewLogger returns a logfmt logger writing to w, filtered at the provided
// level (debug, info, warn or error; anything else means info).
func NewLogger(w io.Writer, lvl string) kitlog.Logger {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	return level.NewFilter(logger, levelOption(lvl))
}

func levelOption(lvl string) level.Option {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// orNop avoids nil checks at every call site.
func orNop(logger kitlog.Logger) kitlog.Logger {
	if logger == nil {
		return kitlog.NewNopLogger()
	}
	return logger
}
