// Package gametest provides deterministic collaborators for driving
// game.Engine in tests: a scripted input, a manual clock and a fixed random
// source.
package gametest

import (
	"io"
	"sync"
	"time"
)

// Step is one scripted line and how long the player "took" to type it.
type Step struct {
	Text string
	Took time.Duration
}

// Line is a Step that arrives instantly.
func Line(text string) Step { return Step{Text: text} }

// Slow is a Step that arrives after d.
func Slow(text string, d time.Duration) Step { return Step{Text: text, Took: d} }

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Script replays Steps in order and advances Clock by each Step's Took.
// Prompts are recorded; masked reads are tagged so tests can assert on them.
type Script struct {
	Clock   *Clock
	steps   []Step
	pos     int
	Prompts []string
	Masked  int
}

func NewScript(clock *Clock, steps ...Step) *Script {
	return &Script{Clock: clock, steps: steps}
}

// Lines builds a Script of instant steps.
func Lines(clock *Clock, lines ...string) *Script {
	steps := make([]Step, len(lines))
	for i, l := range lines {
		steps[i] = Line(l)
	}
	return NewScript(clock, steps...)
}

// Push appends more steps.
func (s *Script) Push(steps ...Step) { s.steps = append(s.steps, steps...) }

// Remaining reports how many steps have not been consumed.
func (s *Script) Remaining() int { return len(s.steps) - s.pos }

func (s *Script) ReadLine(prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.pos >= len(s.steps) {
		return "", io.EOF
	}
	st := s.steps[s.pos]
	s.pos++
	if s.Clock != nil {
		s.Clock.Advance(st.Took)
	}
	return st.Text, nil
}

func (s *Script) ReadMaskedLine(prompt string) (string, error) {
	s.Masked++
	return s.ReadLine(prompt)
}

// Random returns queued values in order, then repeats the last one.
// Values outside the requested interval are clamped.
type Random struct {
	values []int
	pos    int
}

func NewRandom(values ...int) *Random { return &Random{values: values} }

func (r *Random) Between(low, high int) int {
	if len(r.values) == 0 {
		return low
	}
	v := r.values[min(r.pos, len(r.values)-1)]
	r.pos++
	return max(low, min(high, v))
}
