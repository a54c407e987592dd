// Package pacing paces narrative text for terminal shells: typewriter
// reveals with longer pauses on punctuation, and waits the player can
// skip. Everything runs on the caller's goroutine; a wait polls its skip
// predicate on a short tick instead of spawning a listener.
package pacing

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Base delays at speed 1.
const (
	EllipsisDelay  = time.Second
	SentenceDelay  = 400 * time.Millisecond
	CommaDelay     = 200 * time.Millisecond
	CharacterDelay = 50 * time.Millisecond
)

const (
	pollInterval    = 10 * time.Millisecond
	maxWait         = time.Minute
	ellipsis        = "..."
	minQuotedSpeech = 5
)

// Segment is a piece of text followed by a pause.
type Segment struct {
	Text  string
	Delay time.Duration
}

// Segments splits text into reveal segments. An ellipsis is one segment.
// Speed scales every delay; zero or less disables them.
func Segments(text string, speed float64) []Segment {
	runes := []rune(text)
	var out []Segment
	for i := 0; i < len(runes); {
		if i+3 <= len(runes) && string(runes[i:i+3]) == ellipsis {
			out = append(out, Segment{Text: ellipsis, Delay: scale(EllipsisDelay, speed)})
			i += 3
			continue
		}
		r := runes[i]
		var d time.Duration
		switch r {
		case '.', '?', '!':
			d = SentenceDelay
		case ',':
			d = CommaDelay
		default:
			d = CharacterDelay
		}
		out = append(out, Segment{Text: string(r), Delay: scale(d, speed)})
		i++
	}
	return out
}

func scale(d time.Duration, speed float64) time.Duration {
	if speed <= 0 {
		return 0
	}
	return time.Duration(float64(d) * speed)
}

// Wait blocks for d, or until ctx is done or skip reports true. It returns
// true when the full duration elapsed.
func Wait(ctx context.Context, d time.Duration, skip func() bool) bool {
	if d <= 0 {
		return true
	}
	if d > maxWait {
		d = maxWait
	}
	deadline := time.NewTimer(d)
	defer deadline.Stop()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for {
		if skip != nil && skip() {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return true
		case <-tick.C:
		}
	}
}

// Revealer writes lines to a terminal at reading pace.
type Revealer struct {
	Out   io.Writer
	Speed float64
	Skip  func() bool

	wait func(ctx context.Context, d time.Duration, skip func() bool) bool
}

// NewRevealer creates a revealer at the given speed.
func NewRevealer(out io.Writer, speed float64) *Revealer {
	return &Revealer{Out: out, Speed: speed, wait: Wait}
}

// Reveal writes text one segment at a time. Once a wait is skipped or ctx
// ends, the remainder is written at once.
func (r *Revealer) Reveal(ctx context.Context, text string) error {
	segs := Segments(text, r.Speed)
	wait := r.wait
	if wait == nil {
		wait = Wait
	}
	for i, s := range segs {
		if _, err := io.WriteString(r.Out, s.Text); err != nil {
			return err
		}
		if !wait(ctx, s.Delay, r.Skip) {
			for _, rest := range segs[i+1:] {
				if _, err := io.WriteString(r.Out, rest.Text); err != nil {
					return err
				}
			}
			break
		}
	}
	_, err := fmt.Fprintln(r.Out)
	return err
}

// IsReveal reports whether a line carries quoted narrative or dialogue:
// a single-quoted run longer than a few characters.
func IsReveal(line string) bool {
	inQuote := false
	n := 0
	for _, r := range line {
		if r == '\'' {
			if inQuote && n > minQuotedSpeech {
				return true
			}
			inQuote = !inQuote
			n = 0
		} else if inQuote {
			n++
		}
	}
	return false
}
