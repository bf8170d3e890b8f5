package okisnd

import (
	"context"
	"testing"
	"time"

	intcue "github.com/cbegin/okisnd-go/internal/cue"
)

func TestPlayerMasterVolumeRuntimeAPI(t *testing.T) {
	pl, err := NewPlayer(48000, TitleKnuckleBash)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	if got := pl.MasterVolume(); got != 1 {
		t.Fatalf("default master volume = %v, want 1", got)
	}
	pl.SetMasterVolume(0.35)
	if got := pl.MasterVolume(); got != 0.35 {
		t.Fatalf("master volume = %v, want 0.35", got)
	}
	pl.SetMasterVolume(-2)
	if got := pl.MasterVolume(); got != 0 {
		t.Fatalf("master volume should clamp to 0, got %v", got)
	}
}

func TestPlayerSendDrivesChip(t *testing.T) {
	pl, err := NewPlayer(48000, TitleKnuckleBash)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	events := pl.Watch()
	pl.Send(0x10)
	if got := pl.Status(); got != 0xF1 {
		t.Fatalf("status = %#x, want 0xf1", got)
	}
	if phrase, ok := pl.Voice(0); !ok || phrase != 0x12 {
		t.Fatalf("voice 0 = %#x,%v", phrase, ok)
	}
	pl.Send(0x10)
	if phrase, ok := pl.Voice(1); !ok || phrase != 0x12 {
		t.Fatalf("voice 1 = %#x,%v", phrase, ok)
	}
	pl.Send(0)
	if got := pl.Status(); got != 0xF0 {
		t.Fatalf("status after stop = %#x, want 0xf0", got)
	}
	if s := pl.ChipStats(); s.Starts != 2 || s.Stops != 2 {
		t.Fatalf("chip stats = %+v", s)
	}
	for _, want := range []Outcome{OutcomeTriggered, OutcomeTriggered, OutcomeStopAll} {
		select {
		case ev := <-events:
			if ev.Outcome != want {
				t.Fatalf("event = %+v, want %v", ev, want)
			}
		default:
			t.Fatalf("missing %v event", want)
		}
	}
}

func TestPlayerSetTitle(t *testing.T) {
	pl, err := NewPlayer(48000, TitleKnuckleBash)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	pl.Send(0x10)
	if err := pl.SetTitle(TitleDogyuun); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if pl.Title() != TitleDogyuun || pl.Status() != 0xF0 {
		t.Fatalf("title %v status %#x", pl.Title(), pl.Status())
	}
	pl.Send(0x10)
	if pl.Status() != 0xF0 {
		t.Fatalf("dogyuun should not start voices")
	}
	if err := pl.SetTitle(Title(42)); err == nil {
		t.Fatalf("expected error for unknown title")
	}
}

func TestPlayerPlayCue(t *testing.T) {
	pl, err := NewPlayer(48000, TitleFixEight)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	c := intcue.Sequence([]uint8{0x20, 0x21}, time.Millisecond)
	if err := pl.PlayCue(context.Background(), c); err != nil {
		t.Fatalf("play cue: %v", err)
	}
	if got := pl.Status(); got != 0xF3 {
		t.Fatalf("status = %#x, want 0xf3", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	late := intcue.Sequence([]uint8{0x22, 0x23}, time.Hour)
	if err := pl.PlayCue(ctx, late); err == nil {
		t.Fatalf("expected cancellation error")
	}

	bad := intcue.Sequence([]uint8{0x24, 0x25}, -time.Second)
	before := pl.ChipStats()
	if err := pl.PlayCue(context.Background(), bad); err == nil {
		t.Fatalf("expected error for negative offsets")
	}
	if pl.ChipStats() != before {
		t.Fatalf("invalid cue reached the chip")
	}
}

func TestNewPlayerValidates(t *testing.T) {
	if _, err := NewPlayer(0, TitleKnuckleBash); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}
	if _, err := NewPlayer(48000, Title(-1)); err == nil {
		t.Fatalf("expected error for invalid title")
	}
}
