// Package cue describes timed sequences of sound commands.
package cue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxOffset bounds the offset of any event.
	MaxOffset = time.Hour
	// MaxEvents bounds the number of commands a script may queue.
	MaxEvents = 1 << 16
)

type Event struct {
	At      time.Duration
	Command uint8
}

// Cue is a list of commands sent at fixed offsets. Title is empty unless
// the cue names one.
type Cue struct {
	Title  string
	Events []Event
}

// Duration returns the latest event offset.
func (c *Cue) Duration() time.Duration {
	var d time.Duration
	for _, ev := range c.Events {
		d = max(d, ev.At)
	}
	return d
}

func (c *Cue) sortEvents() {
	sort.SliceStable(c.Events, func(i, j int) bool { return c.Events[i].At < c.Events[j].At })
}

// Validate reports the first event whose offset is negative or past
// MaxOffset.
func (c *Cue) Validate() error {
	for i, ev := range c.Events {
		if ev.At < 0 || ev.At > MaxOffset {
			return fmt.Errorf("event %d: offset %v outside [0, %v]", i, ev.At, MaxOffset)
		}
	}
	return nil
}

// Sorted returns the events ordered by offset, keeping the order of events
// that share one. c is not modified.
func (c *Cue) Sorted() []Event {
	out := append([]Event(nil), c.Events...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out
}

var errNegativeGap = errors.New("negative gap between commands")

// Sequence spaces cmds gap apart starting at zero. A negative gap yields
// offsets that Validate rejects.
func Sequence(cmds []uint8, gap time.Duration) *Cue {
	c := &Cue{Events: make([]Event, len(cmds))}
	for i, cmd := range cmds {
		c.Events[i] = Event{At: time.Duration(i) * gap, Command: cmd}
	}
	return c
}

// ParseList reads commands separated by commas or whitespace. Each item is
// a byte in Go integer syntax ("0x10", "16") or an inclusive range
// ("0x10-0x14").
func ParseList(s string) ([]uint8, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var out []uint8
	for _, f := range fields {
		lo, hi, isRange := strings.Cut(f, "-")
		first, err := parseByte(lo)
		if err != nil {
			return nil, err
		}
		if !isRange {
			out = append(out, first)
			continue
		}
		last, err := parseByte(hi)
		if err != nil {
			return nil, err
		}
		if last < first {
			return nil, fmt.Errorf("descending range %q", f)
		}
		for v := int(first); v <= int(last); v++ {
			out = append(out, uint8(v))
		}
	}
	return out, nil
}

func parseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid command %q: %w", s, err)
	}
	return uint8(v), nil
}

// LoadFile reads a Lua cue from a .lua file, or a command list from any
// other file with commands spaced gap apart.
func LoadFile(ctx context.Context, path string, gap time.Duration) (*Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		return LoadLua(ctx, filepath.Base(path), string(data))
	}
	if gap < 0 {
		return nil, errNegativeGap
	}
	cmds, err := ParseList(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c := Sequence(cmds, gap)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
