package audio

import (
	"fmt"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

type ebitenPlayer struct {
	player *ebitaudio.Player
	reader *StreamReader
}

var (
	ebitenContextOnce sync.Once
	ebitenContext     *ebitaudio.Context
	ebitenSampleRate  int
)

// ebiten allows a single audio context per process.
func sharedEbitenContext(sampleRate int) (*ebitaudio.Context, error) {
	ebitenContextOnce.Do(func() {
		ebitenSampleRate = sampleRate
		ebitenContext = ebitaudio.NewContext(sampleRate)
	})
	if ebitenSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", ebitenSampleRate, sampleRate)
	}
	return ebitenContext, nil
}

func newEbitenPlayer(sampleRate int, reader *StreamReader) (*ebitenPlayer, error) {
	ctx, err := sharedEbitenContext(sampleRate)
	if err != nil {
		return nil, err
	}
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("ebiten player: %w", err)
	}
	return &ebitenPlayer{player: pl, reader: reader}, nil
}

func (p *ebitenPlayer) Play()           { p.player.Play() }
func (p *ebitenPlayer) Pause()          { p.player.Pause() }
func (p *ebitenPlayer) IsPlaying() bool { return p.player.IsPlaying() }

func (p *ebitenPlayer) Stop() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return err
	}
	return p.reader.Close()
}
