// Package progress shows a per-framework progress bar during sync runs.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/ui"
)

// Bar wraps progressbar with agentsync's color and logging conventions. A
// disabled Bar is a no-op, so callers never need to check.
type Bar struct {
	bar     *progressbar.ProgressBar
	enabled bool
	desc    string
}

// Options configures the progress bar behavior.
type Options struct {
	// Max is the total number of steps.
	Max int
	// Description is the prefix text shown before the bar.
	Description string
	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer
	// Force shows the bar even when Writer is not a terminal.
	Force bool
}

// New creates a progress bar. The bar is only drawn when colors are enabled,
// the writer is a terminal, and debug logging is off.
func New(opts Options) *Bar {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}

	b := &Bar{
		enabled: opts.Force || shouldShowProgress(opts.Writer),
		desc:    opts.Description,
	}
	if !b.enabled {
		logging.Debug(opts.Description+" started", logging.Count(opts.Max))
		return b
	}

	b.bar = progressbar.NewOptions(
		opts.Max,
		progressbar.OptionSetDescription(opts.Description),
		progressbar.OptionSetWriter(opts.Writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprint(opts.Writer, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(ui.IsColorEnabled()),
	)
	return b
}

// Enabled reports whether the bar is being drawn.
func (b *Bar) Enabled() bool {
	return b.enabled
}

// Step advances the bar by one and shows label as the current item.
func (b *Bar) Step(label string) error {
	if !b.enabled {
		logging.Debug(b.desc, "item", label)
		return nil
	}
	b.bar.Describe(fmt.Sprintf("%s %s", b.desc, ui.Dim(label)))
	return b.bar.Add(1)
}

// Finish completes the bar.
func (b *Bar) Finish() error {
	if !b.enabled {
		logging.Debug(b.desc + " completed")
		return nil
	}
	b.bar.Describe(b.desc)
	return b.bar.Finish()
}

// shouldShowProgress reports whether w is an interactive terminal that can
// host a bar without fighting debug log output.
func shouldShowProgress(w io.Writer) bool {
	if !ui.IsColorEnabled() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return !logging.Default().Enabled(context.Background(), logging.LevelDebug)
}
