package okisnd

import (
	"sync"

	intarb "github.com/cbegin/okisnd-go/internal/arbiter"
)

// Device is the command port of an OKI M6295.
type Device interface {
	ReadStatus() uint8
	WriteCommand(b uint8)
}

// Outcome describes what a single Dispatch call did.
type Outcome int

const (
	OutcomeStopAll Outcome = iota
	OutcomeRangeRejected
	OutcomeSilent
	OutcomeDropped
	OutcomeTriggered
	OutcomeUnsupported
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStopAll:
		return "stop-all"
	case OutcomeRangeRejected:
		return "out-of-range"
	case OutcomeSilent:
		return "silent"
	case OutcomeDropped:
		return "dropped"
	case OutcomeTriggered:
		return "triggered"
	case OutcomeUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// TraceEvent reports how one command was resolved. Channel is -1 unless
// Outcome is OutcomeTriggered.
type TraceEvent struct {
	Title   Title
	Command uint8
	Sample  uint8
	Outcome Outcome
	Channel int
}

type DispatcherOption func(*dispatcherConfig)

type dispatcherConfig struct {
	trace      func(TraceEvent)
	deviceLock sync.Locker
}

func defaultDispatcherConfig() dispatcherConfig {
	return dispatcherConfig{}
}

// WithTrace installs a callback invoked after every Dispatch. It runs
// outside the device lock and cannot change what was written.
func WithTrace(fn func(TraceEvent)) DispatcherOption {
	return func(cfg *dispatcherConfig) {
		cfg.trace = fn
	}
}

// WithDeviceLock names a lock that every other user of the device also
// holds. Dispatch keeps it held from the status read to the last write.
func WithDeviceLock(l sync.Locker) DispatcherOption {
	return func(cfg *dispatcherConfig) {
		cfg.deviceLock = l
	}
}

// Dispatcher turns a title's sound commands into M6295 writes.
type Dispatcher struct {
	mu      sync.Mutex
	title   Title
	profile titleProfile
	dev     Device
	cfg     dispatcherConfig
}

func NewDispatcher(title Title, dev Device, opts ...DispatcherOption) *Dispatcher {
	cfg := defaultDispatcherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dispatcher{
		title:   title,
		profile: title.profile(),
		dev:     dev,
		cfg:     cfg,
	}
}

func (d *Dispatcher) Title() Title { return d.title }

// Dispatch handles one command byte from the main CPU. Commands that map to
// nothing, fall outside the title's range or find every voice busy are
// dropped without any device access beyond the status read.
func (d *Dispatcher) Dispatch(cmd uint8) {
	ev := d.dispatch(cmd)
	if d.cfg.trace != nil {
		d.cfg.trace(ev)
	}
}

func (d *Dispatcher) dispatch(cmd uint8) TraceEvent {
	ev := TraceEvent{Title: d.title, Command: cmd, Channel: -1}
	if !d.profile.supported {
		ev.Outcome = OutcomeUnsupported
		return ev
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.deviceLock != nil {
		d.cfg.deviceLock.Lock()
		defer d.cfg.deviceLock.Unlock()
	}

	if cmd == 0 {
		d.dev.WriteCommand(intarb.StopAll)
		ev.Outcome = OutcomeStopAll
		return ev
	}
	sample, ok := d.profile.table.Lookup(cmd)
	if !ok {
		ev.Outcome = OutcomeRangeRejected
		return ev
	}
	ev.Sample = sample
	if sample == 0 {
		ev.Outcome = OutcomeSilent
		return ev
	}
	ch, ok := intarb.SelectChannel(d.dev.ReadStatus())
	if !ok {
		ev.Outcome = OutcomeDropped
		return ev
	}
	seq := intarb.Trigger(ch, sample)
	d.dev.WriteCommand(seq[0])
	d.dev.WriteCommand(seq[1])
	ev.Outcome = OutcomeTriggered
	ev.Channel = ch
	return ev
}
