package cli

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

const (
	// SpinnerDelay is how long an evaluation runs before a spinner appears.
	// Fast evaluations never show one.
	SpinnerDelay = 250 * time.Millisecond
	// SpinnerRefreshRate is the spinner animation interval.
	SpinnerRefreshRate = 100 * time.Millisecond
)

// Spinner abstracts the terminal spinner so tests can observe it.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	return &realSpinner{s}
}

// withSpinner runs fn and shows a spinner on out if fn is still running
// after delay. The spinner is always stopped before withSpinner returns.
func withSpinner(out io.Writer, delay time.Duration, suffix string, fn func() error) error {
	s := newSpinner(out)
	s.UpdateSuffix(suffix)

	var (
		mu      sync.Mutex
		started bool
		done    bool
	)
	timer := time.AfterFunc(delay, func() {
		mu.Lock()
		defer mu.Unlock()
		if !done {
			s.Start()
			started = true
		}
	})

	err := fn()

	timer.Stop()
	mu.Lock()
	done = true
	if started {
		s.Stop()
	}
	mu.Unlock()
	return err
}

// RunWithSpinner runs fn, showing a spinner on out once fn has run for
// SpinnerDelay.
func RunWithSpinner(out io.Writer, suffix string, fn func() error) error {
	return withSpinner(out, SpinnerDelay, suffix, fn)
}
