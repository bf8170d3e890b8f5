package okisnd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	intcue "github.com/cbegin/okisnd-go/internal/cue"
	intmix "github.com/cbegin/okisnd-go/internal/mixer"
)

const (
	// MaxRenderDuration bounds the length of an offline render, tail included.
	MaxRenderDuration = 5 * time.Minute
	maxRenderRate     = 192000
)

// Render holds the output of an offline cue render.
type Render struct {
	Samples []float32 // interleaved stereo
	Trace   []TraceEvent
}

// RenderCue plays c against a fresh chip without an audio device and
// returns tail of audio past the last command. Events are played in
// offset order whatever their order in c.
func RenderCue(title Title, c *intcue.Cue, sampleRate int, tail time.Duration, opts ...PlayerOption) (*Render, error) {
	if sampleRate <= 0 || sampleRate > maxRenderRate {
		return nil, fmt.Errorf("sampleRate %d outside (0, %d]", sampleRate, maxRenderRate)
	}
	if !title.valid() {
		return nil, errors.New("unknown title")
	}
	if tail < 0 {
		return nil, fmt.Errorf("negative tail %v", tail)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	length := c.Duration() + tail
	if length > MaxRenderDuration {
		return nil, fmt.Errorf("render length %v exceeds %v", length, MaxRenderDuration)
	}

	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	chip := newChip(sampleRate, cfg)
	mix := intmix.NewChain()
	if cfg.boardFilter {
		mix = intmix.NewBoardChain(sampleRate)
	}
	out := &Render{}
	d := NewDispatcher(title, chip, WithTrace(func(ev TraceEvent) {
		out.Trace = append(out.Trace, ev)
	}))

	total := framesAt(length, sampleRate)
	out.Samples = make([]float32, total*2)
	pos := 0
	renderTo := func(frame int) {
		frame = min(frame, total)
		if frame <= pos {
			return
		}
		buf := out.Samples[pos*2 : frame*2]
		chip.Process(buf)
		mix.ProcessBuffer(buf)
		pos = frame
	}
	for _, ev := range c.Sorted() {
		renderTo(framesAt(ev.At, sampleRate))
		d.Dispatch(ev.Command)
	}
	renderTo(total)
	return out, nil
}

func framesAt(d time.Duration, sampleRate int) int {
	return int(math.Round(d.Seconds() * float64(sampleRate)))
}

// wavHeader is the RIFF header of a WAVE_FORMAT_IEEE_FLOAT file with a
// single data chunk.
type wavHeader struct {
	RIFF          [4]byte
	ChunkSize     uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	Format        uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

const wavFormatFloat = 3

func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := uint32(len(samples) * 4)
	h := wavHeader{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		Format:        wavFormatFloat,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * 4),
		BlockAlign:    uint16(channels * 4),
		BitsPerSample: 32,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
	var buf bytes.Buffer
	buf.Grow(binary.Size(h) + int(dataSize))
	// Writes to a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, h)
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}
