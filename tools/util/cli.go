package util

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the text logger shared by the tools.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// Spinner draws a progress indicator until Stop is called. A nil Spinner
// is valid and draws nothing.
type Spinner struct {
	w    io.Writer
	text string
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartSpinner starts drawing text with a spinner on w.
func StartSpinner(w io.Writer, text string) *Spinner {
	s := &Spinner{
		w:    w,
		text: text,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer close(s.done)

	// A common set of spinner characters
	frames := []string{"-", "\\", "|", "/"}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		// \r returns the cursor to the start of the line so the frame is overwritten
		fmt.Fprintf(s.w, "\r%s %s... ", frames[i%len(frames)], s.text)
		select {
		case <-s.stop:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop clears the spinner line. It is safe to call more than once.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}
