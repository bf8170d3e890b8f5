package okisnd

import (
	"fmt"
	"strings"

	intcmd "github.com/cbegin/okisnd-go/internal/cmdtable"
)

// Title selects the command map of one Toaplan 2 game.
type Title int

const (
	TitleBatsugun Title = iota
	TitleKnuckleBash
	TitleFixEight
	// TitleDogyuun has no known command map. Its dispatcher never touches
	// the device.
	TitleDogyuun
)

type titleProfile struct {
	name      string
	board     string
	notes     []string
	table     intcmd.Table
	supported bool
}

var titleProfiles = [...]titleProfile{
	TitleBatsugun: {
		name:  "batsugun",
		board: "TP-030",
		notes: []string{
			"command 0x0d is a megamix of OKI effects",
			"command 0x14 repeats the initial crash of its sample four times",
		},
		table:     intcmd.Batsugun(),
		supported: true,
	},
	TitleKnuckleBash: {
		name:      "kbash",
		board:     "TP-023",
		table:     intcmd.KnuckleBash(),
		supported: true,
	},
	TitleFixEight: {
		name:  "fixeight",
		board: "TP-026",
		notes: []string{
			"some effects are mixed with FM tones, probably 0x60, 0x52, 0x50 and 0x46",
		},
		table:     intcmd.FixEight(),
		supported: true,
	},
	TitleDogyuun: {
		name:  "dogyuun",
		board: "TP-022",
		notes: []string{"command map unknown; all commands are ignored"},
	},
}

// Titles lists every known title in declaration order.
func Titles() []Title {
	out := make([]Title, len(titleProfiles))
	for i := range titleProfiles {
		out[i] = Title(i)
	}
	return out
}

// ParseTitle resolves a short title name such as "kbash".
func ParseTitle(name string) (Title, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, p := range titleProfiles {
		if p.name == key {
			return Title(i), nil
		}
	}
	return 0, fmt.Errorf("unknown title %q (expected %s)", name, titleNames())
}

func titleNames() string {
	names := make([]string, len(titleProfiles))
	for i, p := range titleProfiles {
		names[i] = p.name
	}
	return strings.Join(names, "|")
}

func (t Title) valid() bool { return t >= 0 && int(t) < len(titleProfiles) }

func (t Title) profile() titleProfile {
	if !t.valid() {
		return titleProfile{name: fmt.Sprintf("title(%d)", int(t))}
	}
	return titleProfiles[t]
}

func (t Title) String() string { return t.profile().name }

// Board returns the PCB code the title shipped on.
func (t Title) Board() string { return t.profile().board }

// Notes returns known quirks of the title's command map.
func (t Title) Notes() []string { return append([]string(nil), t.profile().notes...) }

// Supported reports whether the title has a command map.
func (t Title) Supported() bool { return t.profile().supported }

// Bound returns the exclusive upper limit of valid command bytes, or 0 when
// the title is unsupported.
func (t Title) Bound() int {
	p := t.profile()
	if !p.supported {
		return 0
	}
	return p.table.Len()
}

// Lookup resolves cmd to a sample number without touching any device.
func (t Title) Lookup(cmd uint8) (uint8, bool) {
	p := t.profile()
	if !p.supported {
		return 0, false
	}
	return p.table.Lookup(cmd)
}

// MappedCommands returns the commands that resolve to a sample.
func (t Title) MappedCommands() []uint8 {
	p := t.profile()
	if !p.supported {
		return nil
	}
	return p.table.Mapped()
}
