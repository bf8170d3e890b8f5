package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/cbegin/okisnd-go"
	intaudio "github.com/cbegin/okisnd-go/internal/audio"
	intcue "github.com/cbegin/okisnd-go/internal/cue"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/sqweek/dialog"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "", log.Ldate|log.Ltime)

	var (
		titleName   = pflag.StringP("title", "t", "kbash", "game: batsugun|kbash|fixeight|dogyuun")
		commands    = pflag.StringP("commands", "c", "", "commands to send, e.g. \"0x10,0x11 0x20-0x24\"")
		pick        = pflag.Bool("pick", false, "choose a cue file with a file dialog")
		wavPath     = pflag.StringP("wav", "o", "", "render offline to this WAV file instead of playing")
		backendName = pflag.String("backend", "ebiten", "audio backend: ebiten|oto")
		sampleRate  = pflag.Int("sample-rate", 48000, "output sample rate")
		gap         = pflag.Duration("gap", 400*time.Millisecond, "spacing between listed commands")
		tail        = pflag.Duration("tail", time.Second, "audio kept after the last command")
		volume      = pflag.Float64("volume", 1.0, "master volume scalar")
		trace       = pflag.Bool("trace", false, "print how each command was resolved")
		dump        = pflag.Bool("dump", false, "dump the title's command map and exit")
		interactive = pflag.BoolP("interactive", "i", false, "sound test: type hex commands on the terminal")
	)
	pflag.Parse()
	if *tail < 0 {
		logger.Fatalf("--tail %v is negative", *tail)
	}

	title, err := okisnd.ParseTitle(*titleName)
	if err != nil {
		logger.Fatal(err)
	}
	if *dump {
		dumpTitle(title)
		return
	}

	backend, err := intaudio.ParseKind(*backendName)
	if err != nil {
		logger.Fatal(err)
	}

	var cue *intcue.Cue
	if !*interactive {
		cue, err = resolveCue(context.Background(), title, *commands, pflag.Args(), *pick, *gap)
		if err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				logger.Printf("User cancelled the file dialog")
				os.Exit(1)
			}
			logger.Fatal(err)
		}
		if cue.Title != "" && !pflag.CommandLine.Changed("title") {
			if title, err = okisnd.ParseTitle(cue.Title); err != nil {
				logger.Fatal(err)
			}
		}
	}
	if !title.Supported() {
		logger.Printf("%s has no command map; every command will be ignored", title)
	}

	if *wavPath != "" {
		if cue == nil {
			logger.Fatal("--wav needs commands or a cue file")
		}
		if err := renderWAV(title, cue, *sampleRate, *tail, *volume, *wavPath, *trace); err != nil {
			logger.Fatal(err)
		}
		return
	}

	pl, err := okisnd.NewPlayer(*sampleRate, title, okisnd.WithBackend(backend))
	if err != nil {
		logger.Fatal(err)
	}
	pl.SetMasterVolume(*volume)
	if *trace || *interactive {
		go printTrace(pl.Watch(), *interactive)
	}
	if err := pl.Start(); err != nil {
		logger.Fatal(err)
	}
	defer pl.Stop()

	if *interactive {
		if err := runSoundTest(pl); err != nil {
			logger.Print(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := pl.PlayCue(ctx, cue); err != nil {
		logger.Printf("playback interrupted: %v", err)
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(*tail):
	}
}

// scriptTimeout bounds how long a Lua cue may run while it is loaded.
const scriptTimeout = 5 * time.Second

// resolveCue builds the cue from, in order: --commands, a positional cue
// file, the file dialog, or a sweep of every mapped command.
func resolveCue(ctx context.Context, title okisnd.Title, commands string, args []string, pick bool, gap time.Duration) (*intcue.Cue, error) {
	if gap < 0 {
		return nil, fmt.Errorf("--gap %v is negative", gap)
	}
	if strings.TrimSpace(commands) != "" {
		cmds, err := intcue.ParseList(commands)
		if err != nil {
			return nil, err
		}
		return intcue.Sequence(cmds, gap), nil
	}
	if len(args) > 0 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return nil, fmt.Errorf("cannot get absolute path: %w", err)
		}
		return loadCue(ctx, path, gap)
	}
	if pick {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		path, err := dialog.File().
			Title("Open sound cue").
			Filter("Lua cues (*.lua)", "lua").
			Filter("Command lists (*.txt)", "txt").
			SetStartDir(cwd).
			Load()
		if err != nil {
			return nil, err
		}
		if path == "" {
			return nil, dialog.ErrCancelled
		}
		return loadCue(ctx, path, gap)
	}
	c := intcue.Sequence(title.MappedCommands(), gap)
	c.Title = title.String()
	return c, nil
}

func loadCue(ctx context.Context, path string, gap time.Duration) (*intcue.Cue, error) {
	ctx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()
	return intcue.LoadFile(ctx, path, gap)
}

func renderWAV(title okisnd.Title, cue *intcue.Cue, sampleRate int, tail time.Duration, volume float64, path string, trace bool) error {
	r, err := okisnd.RenderCue(title, cue, sampleRate, tail)
	if err != nil {
		return err
	}
	if volume != 1 {
		for i := range r.Samples {
			r.Samples[i] *= float32(volume)
		}
	}
	if trace {
		for _, ev := range r.Trace {
			fmt.Println(formatTrace(ev))
		}
	}
	if err := os.WriteFile(path, okisnd.EncodeWAVFloat32LE(r.Samples, sampleRate, 2), 0o644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	logger.Printf("wrote %s (%d commands, %.2fs)", path, len(cue.Events), float64(len(r.Samples)/2)/float64(sampleRate))
	return nil
}

func printTrace(events <-chan okisnd.TraceEvent, raw bool) {
	eol := "\n"
	if raw {
		eol = "\r\n"
	}
	for ev := range events {
		fmt.Print(formatTrace(ev), eol)
	}
}

func formatTrace(ev okisnd.TraceEvent) string {
	switch ev.Outcome {
	case okisnd.OutcomeTriggered:
		return fmt.Sprintf("command %02x: sample %02x on channel %d", ev.Command, ev.Sample, ev.Channel)
	case okisnd.OutcomeDropped:
		return fmt.Sprintf("command %02x: sample %02x dropped, all channels busy", ev.Command, ev.Sample)
	default:
		return fmt.Sprintf("command %02x: %s", ev.Command, ev.Outcome)
	}
}

type titleDump struct {
	Title     string
	Board     string
	Supported bool
	Bound     int
	Notes     []string
	Map       map[string]string
}

func dumpTitle(title okisnd.Title) {
	d := titleDump{
		Title:     title.String(),
		Board:     title.Board(),
		Supported: title.Supported(),
		Bound:     title.Bound(),
		Notes:     title.Notes(),
		Map:       map[string]string{},
	}
	for _, cmd := range title.MappedCommands() {
		sample, _ := title.Lookup(cmd)
		d.Map[fmt.Sprintf("%02x", cmd)] = fmt.Sprintf("%02x", sample)
	}
	cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
	cfg.Fdump(os.Stdout, d)
}
