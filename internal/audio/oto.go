package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// otoOutput is the part of *oto.Player the backend drives.
type otoOutput interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

type otoPlayer struct {
	mu     sync.Mutex
	player otoOutput
	reader *StreamReader
}

var (
	otoContextOnce sync.Once
	otoContext     *oto.Context
	otoContextErr  error
	otoSampleRate  int
)

func sharedOtoContext(sampleRate int) (*oto.Context, error) {
	otoContextOnce.Do(func() {
		otoSampleRate = sampleRate
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoContextErr = err
			return
		}
		<-ready
		otoContext = ctx
	})
	if otoContextErr != nil {
		return nil, fmt.Errorf("oto context: %w", otoContextErr)
	}
	if otoSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", otoSampleRate, sampleRate)
	}
	return otoContext, nil
}

func newOtoPlayer(sampleRate int, reader *StreamReader) (*otoPlayer, error) {
	ctx, err := sharedOtoContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return &otoPlayer{player: ctx.NewPlayer(reader), reader: reader}, nil
}

func (p *otoPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil {
		p.player.Play()
	}
}

func (p *otoPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil {
		p.player.Pause()
	}
}

func (p *otoPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.player != nil && p.player.IsPlaying()
}

// Stop releases the oto player whether or not it was ever played. Later
// calls are no-ops.
func (p *otoPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return errors.Join(err, p.reader.Close())
}
