package main

import (
	"fmt"
	"os"

	"github.com/cbegin/okisnd-go"
	"golang.org/x/term"
)

const soundTestHelp = "hex digits: command  x: stop all  n/p: next/prev mapped  space: repeat  q: quit"

// runSoundTest reads keys from a raw terminal and sends commands the way a
// board's service-mode sound test does.
func runSoundTest(pl *okisnd.Player) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("sound test needs an interactive terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	st := newSoundTest(pl.Title().MappedCommands())
	fmt.Printf("%s sound test\r\n%s\r\n", pl.Title(), soundTestHelp)
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		cmd, send, quit := st.key(buf[0])
		if quit {
			return nil
		}
		if send {
			pl.Send(cmd)
		}
	}
}

// soundTest turns key presses into commands.
type soundTest struct {
	mapped  []uint8
	idx     int
	pending int // high nibble typed so far, or -1
	last    uint8
}

func newSoundTest(mapped []uint8) *soundTest {
	return &soundTest{mapped: mapped, idx: -1, pending: -1}
}

func (s *soundTest) key(b byte) (cmd uint8, send bool, quit bool) {
	switch {
	case b == 'q' || b == 3: // Ctrl-C
		return 0, false, true
	case b == 'x':
		s.pending = -1
		return 0, true, false
	case b == ' ':
		return s.last, s.last != 0, false
	case b == 'n' || b == 'p':
		if len(s.mapped) == 0 {
			return 0, false, false
		}
		switch {
		case b == 'n':
			s.idx = (s.idx + 1) % len(s.mapped)
		case s.idx <= 0:
			s.idx = len(s.mapped) - 1
		default:
			s.idx--
		}
		s.last = s.mapped[s.idx]
		return s.last, true, false
	}
	v, ok := hexValue(b)
	if !ok {
		return 0, false, false
	}
	if s.pending < 0 {
		s.pending = v
		return 0, false, false
	}
	cmd = uint8(s.pending<<4 | v)
	s.pending = -1
	s.last = cmd
	return cmd, true, false
}

func hexValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}
