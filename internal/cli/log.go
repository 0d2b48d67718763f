// Package cli implements the boardtree command-line interface.
//
// The commands load a design file, build its node tree, resolve every
// placeable node to an absolute board position and write the result as a
// JSON report or a DOT/SVG diagram. Placement reports are cached on disk or
// in Redis; see the cache subcommand.
//
// # Commands
//
//   - place: Resolve positions and write the placement report
//   - validate: Check that a design builds and every node resolves
//   - render: Draw the design tree as DOT or SVG
//   - browse: Inspect placements interactively
//   - serve: Expose placement over HTTP
//   - cache: Manage the placement cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const logTimeFormat = "15:04:05.00"

// newLogger writes to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// commandLogger scopes l to a subcommand: "place: Placed 4 of 6 nodes".
func commandLogger(l *log.Logger, name string) *log.Logger {
	if name == "" || name == appName {
		return l
	}
	return l.WithPrefix(name)
}

// progress measures one operation and logs it once finished.
type progress struct {
	logger *log.Logger
	start  time.Time
	since  func(time.Time) time.Duration
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now(), since: time.Since}
}

// done logs msg at info level with the elapsed time appended, e.g.
// "Placed 12 of 14 nodes (3ms)". keyvals are passed through as fields.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg+" ("+p.since(p.start).Round(time.Millisecond).String()+")", keyvals...)
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger set by the root command, or
// log.Default outside a command run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
