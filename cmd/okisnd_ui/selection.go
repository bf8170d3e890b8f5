package main

import (
	"fmt"

	"github.com/cbegin/okisnd-go"
)

// selection is the command cursor of the sound test screen.
type selection struct {
	title  okisnd.Title
	cmd    uint8
	mapped []uint8
}

func newSelection(title okisnd.Title) selection {
	return selection{title: title, mapped: title.MappedCommands()}
}

// step moves the cursor, wrapping inside the title's command range.
func (s *selection) step(delta int) {
	bound := s.title.Bound()
	if bound == 0 {
		bound = 256
	}
	s.cmd = uint8(((int(s.cmd)+delta)%bound + bound) % bound)
}

// nextMapped moves to the next command that resolves to a sample.
func (s *selection) nextMapped() {
	for _, c := range s.mapped {
		if c > s.cmd {
			s.cmd = c
			return
		}
	}
	if len(s.mapped) > 0 {
		s.cmd = s.mapped[0]
	}
}

func (s selection) describe() string {
	switch {
	case !s.title.Supported():
		return "no command map"
	case s.cmd == 0:
		return "stop all effects"
	}
	sample, _ := s.title.Lookup(s.cmd)
	if sample == 0 {
		return "no sample"
	}
	return fmt.Sprintf("sample %02X", sample)
}
