package utils

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Progress is a terminal progress indicator showing a spinner and the
// number of processed items out of the total.
type Progress struct {
	mu         sync.Mutex
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	total      int
	done       int
	hideCursor bool
	stopChan   chan struct{}
	stopped    chan struct{}
}

// NewProgress instantiates a new progress indicator for total items.
func NewProgress(w io.Writer, msg string, total int, d time.Duration, hideCursor bool) *Progress {
	return &Progress{
		delay:      d,
		writer:     w,
		message:    msg,
		total:      total,
		hideCursor: hideCursor,
		stopChan:   make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Start starts the progress indicator.
func (p *Progress) Start() {
	if p.hideCursor && runtime.GOOS != "windows" {
		// hides the cursor
		fmt.Fprint(p.writer, "\033[?25l")
	}

	go func() {
		defer close(p.stopped)
		for {
			for _, r := range `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏` {
				select {
				case <-p.stopChan:
					return
				default:
					p.mu.Lock()
					p.clear()
					output := fmt.Sprintf("\r%s %s %d/%d", p.message, DecorateText(string(r), SuccessMessage), p.done, p.total)
					fmt.Fprint(p.writer, output)
					p.lastOutput = output
					p.mu.Unlock()

					time.Sleep(p.delay)
				}
			}
		}
	}()
}

// Incr marks one more item as processed.
func (p *Progress) Incr() {
	p.mu.Lock()
	p.done++
	p.mu.Unlock()
}

// Done returns the number of processed items.
func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Stop stops the progress indicator and waits for the last frame to be cleared.
func (p *Progress) Stop() {
	close(p.stopChan)
	<-p.stopped

	p.mu.Lock()
	defer p.mu.Unlock()
	p.clear()
	p.RestoreCursor()
}

// RestoreCursor restores back the cursor visibility.
func (p *Progress) RestoreCursor() {
	if p.hideCursor && runtime.GOOS != "windows" {
		// makes the cursor visible
		fmt.Fprint(p.writer, "\033[?25h")
	}
}

// clear deletes the last line. Caller must hold the locker.
func (p *Progress) clear() {
	if p.lastOutput == "" {
		return
	}
	n := utf8.RuneCountInString(p.lastOutput)
	fmt.Fprint(p.writer, "\r"+strings.Repeat(" ", n)+"\r")
	p.lastOutput = ""
}
