package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
)

// SampleSource renders interleaved stereo float32 frames.
type SampleSource interface {
	Process(dst []float32)
}

// StreamReader encodes a SampleSource as little-endian float32 stereo for
// the output backends. The source is only touched while lock is held, so
// command writes from other goroutines never interleave with rendering.
type StreamReader struct {
	lock   sync.Locker
	source SampleSource
	buf    []float32
	frames atomic.Int64
}

func NewStreamReader(source SampleSource, lock sync.Locker) *StreamReader {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &StreamReader{source: source, lock: lock}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]

	r.lock.Lock()
	r.source.Process(r.buf)
	r.lock.Unlock()

	for i, s := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	r.frames.Add(int64(frames))
	return frames * 8, nil
}

// Frames returns the number of stereo frames rendered so far.
func (r *StreamReader) Frames() int64 { return r.frames.Load() }

func (r *StreamReader) Close() error { return nil }
