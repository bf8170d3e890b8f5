package main

import (
	"testing"

	"github.com/cbegin/okisnd-go"
)

func TestSelectionWrapsAtTitleBound(t *testing.T) {
	s := newSelection(okisnd.TitleBatsugun)
	s.step(-1)
	if s.cmd != 63 {
		t.Fatalf("cmd = %#x, want 0x3f", s.cmd)
	}
	s.step(0x10)
	if s.cmd != 0x0f {
		t.Fatalf("cmd = %#x, want 0x0f", s.cmd)
	}
	d := newSelection(okisnd.TitleDogyuun)
	d.step(-1)
	if d.cmd != 0xff {
		t.Fatalf("dogyuun cmd = %#x, want 0xff", d.cmd)
	}
}

func TestSelectionNextMapped(t *testing.T) {
	s := newSelection(okisnd.TitleFixEight)
	s.nextMapped()
	if s.cmd != 0x20 {
		t.Fatalf("first mapped = %#x, want 0x20", s.cmd)
	}
	s.cmd = 0x60
	s.nextMapped()
	if s.cmd != 0x20 {
		t.Fatalf("wrap = %#x, want 0x20", s.cmd)
	}
}

func TestSelectionDescribe(t *testing.T) {
	s := newSelection(okisnd.TitleKnuckleBash)
	if got := s.describe(); got != "stop all effects" {
		t.Fatalf("describe(0) = %q", got)
	}
	s.cmd = 0x10
	if got := s.describe(); got != "sample 12" {
		t.Fatalf("describe(0x10) = %q", got)
	}
	s.cmd = 0x05
	if got := s.describe(); got != "no sample" {
		t.Fatalf("describe(0x05) = %q", got)
	}
}
