package okisnd

import (
	"context"
	"errors"
	"sync"
	"time"

	intaudio "github.com/cbegin/okisnd-go/internal/audio"
	intcue "github.com/cbegin/okisnd-go/internal/cue"
	intmix "github.com/cbegin/okisnd-go/internal/mixer"
	intoki "github.com/cbegin/okisnd-go/internal/okim6295"
)

type PlayerOption func(*playerConfig)

type playerConfig struct {
	backend     intaudio.Kind
	bank        intoki.Bank
	chip        intoki.Params
	boardFilter bool
	sampleTap   func([]float32)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{
		backend:     intaudio.KindEbiten,
		chip:        intoki.DefaultParams(),
		boardFilter: true,
	}
}

// WithBackend selects the audio output used by Start.
func WithBackend(kind intaudio.Kind) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.backend = kind
	}
}

// WithBank replaces the placeholder phrase bank.
func WithBank(bank intoki.Bank) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.bank = bank
	}
}

func WithChipParams(p intoki.Params) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.chip = p
	}
}

func WithBoardFilter(enabled bool) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.boardFilter = enabled
	}
}

// WithSampleTap installs a callback invoked with each generated stereo buffer.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// Player drives a simulated M6295 from sound commands and plays the result.
type Player struct {
	mu         sync.Mutex
	sampleRate int
	cfg        playerConfig
	volume     float64

	// devMu serializes the chip between the audio thread and Dispatch.
	devMu      sync.Mutex
	chip       *intoki.Chip
	mix        *intmix.Chain
	dispatcher *Dispatcher

	reader *intaudio.StreamReader
	audio  intaudio.Backend

	eventCh   chan TraceEvent
	eventChMu sync.Mutex
}

// playerSource renders the chip through the board stage. The stream reader
// holds devMu around Process.
type playerSource struct {
	p *Player
}

func (s playerSource) Process(dst []float32) {
	s.p.chip.Process(dst)
	if s.p.mix != nil {
		s.p.mix.ProcessBuffer(dst)
	}
	if s.p.cfg.sampleTap != nil {
		s.p.cfg.sampleTap(dst)
	}
}

func NewPlayer(sampleRate int, title Title, opts ...PlayerOption) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	if !title.valid() {
		return nil, errors.New("unknown title")
	}
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Player{sampleRate: sampleRate, cfg: cfg, volume: 1}
	p.chip = newChip(sampleRate, cfg)
	if cfg.boardFilter {
		p.mix = intmix.NewBoardChain(sampleRate)
	} else {
		p.mix = intmix.NewChain()
	}
	p.dispatcher = p.newDispatcher(title)
	p.reader = intaudio.NewStreamReader(playerSource{p: p}, &p.devMu)
	return p, nil
}

func newChip(sampleRate int, cfg playerConfig) *intoki.Chip {
	bank := cfg.bank
	if bank == nil {
		bank = intoki.NewSynthBank(intoki.ChipRate(cfg.chip))
	}
	return intoki.New(sampleRate, bank, cfg.chip)
}

func (p *Player) newDispatcher(title Title) *Dispatcher {
	return NewDispatcher(title, p.chip, WithDeviceLock(&p.devMu), WithTrace(p.sendEvent))
}

// Start opens the audio backend on first use and resumes output.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio == nil {
		backend, err := intaudio.Open(p.cfg.backend, p.sampleRate, p.reader)
		if err != nil {
			return err
		}
		p.audio = backend
	}
	p.audio.Play()
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio == nil {
		return nil
	}
	err := p.audio.Stop()
	p.audio = nil
	return err
}

// Send dispatches one sound command.
func (p *Player) Send(cmd uint8) {
	p.mu.Lock()
	d := p.dispatcher
	p.mu.Unlock()
	d.Dispatch(cmd)
}

// PlayCue sends the cue's commands at their offsets from now. It returns
// when the last command is sent or ctx is done. Events are sent in offset
// order.
func (p *Player) PlayCue(ctx context.Context, c *intcue.Cue) error {
	if err := c.Validate(); err != nil {
		return err
	}
	start := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C
	for _, ev := range c.Sorted() {
		if wait := ev.At - time.Since(start); wait > 0 {
			timer.Reset(wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		p.Send(ev.Command)
	}
	return nil
}

// Title returns the title whose command map is in use.
func (p *Player) Title() Title {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dispatcher.Title()
}

// SetTitle switches command maps and silences the chip.
func (p *Player) SetTitle(title Title) error {
	if !title.valid() {
		return errors.New("unknown title")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.devMu.Lock()
	p.chip.Reset()
	p.mix.Reset()
	p.devMu.Unlock()
	p.dispatcher = p.newDispatcher(title)
	return nil
}

// Status returns the chip's status byte.
func (p *Player) Status() uint8 {
	p.devMu.Lock()
	defer p.devMu.Unlock()
	return p.chip.ReadStatus()
}

// Voice returns the phrase on voice i and whether it is sounding.
func (p *Player) Voice(i int) (uint8, bool) {
	p.devMu.Lock()
	defer p.devMu.Unlock()
	return p.chip.Playing(i)
}

// ChipStats returns command port counters from the simulated chip.
func (p *Player) ChipStats() intoki.Stats {
	p.devMu.Lock()
	defer p.devMu.Unlock()
	return p.chip.Stats()
}

// Watch returns a channel that receives a TraceEvent for every command
// sent. The channel is buffered (cap 32); events are dropped when it is
// full. Only the most recent Watch channel receives events.
func (p *Player) Watch() <-chan TraceEvent {
	ch := make(chan TraceEvent, 32)
	p.eventChMu.Lock()
	p.eventCh = ch
	p.eventChMu.Unlock()
	return ch
}

func (p *Player) sendEvent(ev TraceEvent) {
	p.eventChMu.Lock()
	ch := p.eventCh
	p.eventChMu.Unlock()
	if ch != nil {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SetMasterVolume sets runtime volume scalar. 1.0 is default.
func (p *Player) SetMasterVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
	p.devMu.Lock()
	p.mix.SetGain(float32(volume))
	p.devMu.Unlock()
}

func (p *Player) MasterVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// FramesRendered returns how many stereo frames the backend has pulled.
func (p *Player) FramesRendered() int64 { return p.reader.Frames() }
