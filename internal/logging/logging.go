// Package logging builds the kratos logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Makepad-fr/dayplan/internal/conf"
)

// New returns a level-filtered logger writing to c.Path, or to fallback
// when no path is configured. The returned close func releases the file.
func New(c conf.Logging, fallback io.Writer) (log.Logger, func() error, error) {
	w := fallback
	closeFn := func() error { return nil }
	if c.Path != "" {
		f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.With(log.NewStdLogger(w),
		"ts", log.Timestamp(time.DateTime),
		"service.name", conf.AppName,
	)
	level := log.LevelWarn
	if c.Level != "" {
		level = log.ParseLevel(c.Level)
	}
	return log.NewFilter(logger, log.FilterLevel(level)), closeFn, nil
}
