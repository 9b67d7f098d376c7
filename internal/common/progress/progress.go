// Package progress provides an indeterminate terminal spinner shown while
// remote metadata is being fetched.
package progress

import (
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/aurmate/aurmate/internal/common/output"
)

// Spinner wraps an indeterminate progress bar driven by a background
// goroutine. Stop is idempotent and must run on every exit path of the
// scope that started the spinner.
type Spinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
	once sync.Once
}

// Start begins spinning with the given description. On a non-terminal
// stdout the spinner is a no-op so piped output stays clean.
func Start(description string) *Spinner {
	if !output.IsTerminal() {
		return &Spinner{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	s := &Spinner{bar: bar, done: make(chan struct{})}
	go s.spin()
	return s
}

func (s *Spinner) spin() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.bar.Add(1)
		}
	}
}

// Stop halts the spinner and clears its terminal output. Safe to call
// more than once.
func (s *Spinner) Stop() {
	if s.bar == nil {
		return
	}
	s.once.Do(func() {
		close(s.done)
		s.bar.Finish()
		s.bar.Clear()
	})
}
