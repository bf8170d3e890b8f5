package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"testing"
)

type rampSource struct {
	next   float32
	locked func() bool
	misses int
}

func (s *rampSource) Process(dst []float32) {
	if s.locked != nil && !s.locked() {
		s.misses++
	}
	for i := range dst {
		dst[i] = s.next
		s.next += 0.25
	}
}

type flagLock struct {
	sync.Mutex
	held bool
}

func (l *flagLock) Lock()   { l.Mutex.Lock(); l.held = true }
func (l *flagLock) Unlock() { l.held = false; l.Mutex.Unlock() }

func TestStreamReaderEncodesFloat32LE(t *testing.T) {
	lock := &flagLock{}
	src := &rampSource{locked: func() bool { return lock.held }}
	r := NewStreamReader(src, lock)
	buf := make([]byte, 8*3+5)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 24 {
		t.Fatalf("read %d bytes, want 24", n)
	}
	for i := 0; i < 6; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != float32(i)*0.25 {
			t.Fatalf("sample %d = %f", i, got)
		}
	}
	if r.Frames() != 3 {
		t.Fatalf("frames = %d, want 3", r.Frames())
	}
	if src.misses != 0 {
		t.Fatalf("source rendered without the lock held")
	}
}

func TestStreamReaderShortBuffer(t *testing.T) {
	r := NewStreamReader(&rampSource{}, nil)
	n, err := r.Read(make([]byte, 7))
	if n != 0 || err != nil {
		t.Fatalf("short read = %d, %v", n, err)
	}
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"ebiten", "oto"} {
		if _, err := ParseKind(name); err != nil {
			t.Fatalf("ParseKind(%q): %v", name, err)
		}
	}
	if _, err := ParseKind("alsa"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
