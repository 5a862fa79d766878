package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameInterval = 80 * time.Millisecond

// spinner animates the busy message on the last terminal line. Lines
// printed through it land above the animation, which keeps running.
type spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	frame   int
	active  bool
	done    chan struct{}
	exited  chan struct{}
}

func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{w: w, message: message}
}

// Start begins animating; a running spinner is left alone
func (s *spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.done = make(chan struct{})
	s.exited = make(chan struct{})
	go s.run(s.done, s.exited)
}

func (s *spinner) run(done <-chan struct{}, exited chan<- struct{}) {
	defer close(exited)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.active {
				s.draw()
			}
			s.mu.Unlock()
		}
	}
}

// Stop clears the line and waits for the animation to exit
func (s *spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.clear()
	done, exited := s.done, s.exited
	s.mu.Unlock()

	close(done)
	<-exited
}

// Println writes line on its own row without the next frame overwriting it
func (s *spinner) Println(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		s.clear()
	}
	fmt.Fprintln(s.w, line)
	if s.active {
		s.draw()
	}
}

func (s *spinner) draw() {
	fmt.Fprintf(s.w, "\r%s %s", frames[s.frame%len(frames)], s.message)
	s.frame++
}

func (s *spinner) clear() {
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", runewidth.StringWidth(s.message)+2))
}
