// Package logging configures the logrus logger shared by the CLI commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures New.
type Options struct {
	// Verbose lowers the level from info to debug.
	Verbose bool
	// Format is FormatText or FormatJSON. Empty selects text.
	Format string
	// Out receives log lines. Defaults to stderr.
	Out io.Writer
}

// New builds a logger entry tagged with the application name.
func New(opts Options) (*logrus.Entry, error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	log := logrus.New()
	log.SetOutput(out)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText:
		log.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	case FormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("logging: unknown format %q, expected %s or %s", opts.Format, FormatText, FormatJSON)
	}

	log.SetLevel(logrus.InfoLevel)
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log.WithField("app", "lvglgen"), nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
