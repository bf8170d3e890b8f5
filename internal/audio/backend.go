package audio

import "fmt"

// Backend is a running audio output.
type Backend interface {
	Play()
	Pause()
	IsPlaying() bool
	Stop() error
}

type Kind string

const (
	KindEbiten Kind = "ebiten"
	KindOto    Kind = "oto"
)

// ParseKind accepts the names used on the command line.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case KindEbiten, KindOto:
		return Kind(name), nil
	default:
		return "", fmt.Errorf("invalid audio backend %q (expected ebiten|oto)", name)
	}
}

// Open starts no playback; call Play on the returned backend.
func Open(kind Kind, sampleRate int, reader *StreamReader) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch kind {
	case KindEbiten, "":
		b, err = newEbitenPlayer(sampleRate, reader)
	case KindOto:
		b, err = newOtoPlayer(sampleRate, reader)
	default:
		return nil, fmt.Errorf("invalid audio backend %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
