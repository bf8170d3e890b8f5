package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/cbegin/okisnd-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/pflag"
)

const (
	windowW      = 800
	windowH      = 520
	uiSampleRate = 48000

	textScale = 2
	lineH     = 14 * textScale

	scopeLen   = 1024
	traceLines = 8
)

var (
	cabinetColor = color.RGBA{176, 180, 188, 255}
	panelColor   = color.RGBA{24, 24, 32, 255}
	edgeHi       = color.RGBA{240, 240, 244, 255}
	edgeMid      = color.RGBA{112, 116, 124, 255}
	edgeLo       = color.RGBA{56, 56, 64, 255}
	lampOff      = color.RGBA{48, 16, 16, 255}
	lampOn       = color.RGBA{255, 64, 32, 255}
	scopeColor   = color.RGBA{64, 255, 96, 255}
)

// scope keeps the most recent mono output for display.
type scope struct {
	mu       sync.Mutex
	ring     [scopeLen]float32
	writePos int
}

// Tap is called from the audio thread.
func (s *scope) Tap(samples []float32) {
	s.mu.Lock()
	for i := 0; i+1 < len(samples); i += 2 {
		s.ring[s.writePos] = (samples[i] + samples[i+1]) * 0.5
		s.writePos = (s.writePos + 1) % scopeLen
	}
	s.mu.Unlock()
}

func (s *scope) Snapshot() []float32 {
	out := make([]float32, scopeLen)
	s.mu.Lock()
	for i := range out {
		out[i] = s.ring[(s.writePos+i)%scopeLen]
	}
	s.mu.Unlock()
	return out
}

type game struct {
	player  *okisnd.Player
	events  <-chan okisnd.TraceEvent
	scope   *scope
	titles  []okisnd.Title
	sel     selection
	trace   []string
	status  string
	textImg map[string]*ebiten.Image
}

func newGame(title okisnd.Title) (*game, error) {
	sc := &scope{}
	pl, err := okisnd.NewPlayer(uiSampleRate, title, okisnd.WithSampleTap(sc.Tap))
	if err != nil {
		return nil, err
	}
	if err := pl.Start(); err != nil {
		return nil, err
	}
	g := &game{
		player:  pl,
		events:  pl.Watch(),
		scope:   sc,
		titles:  okisnd.Titles(),
		textImg: make(map[string]*ebiten.Image, 256),
		status:  "Ready",
	}
	g.sel = newSelection(title)
	return g, nil
}

func (g *game) Update() error {
	g.pollEvents()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.switchTitle(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.switchTitle(1)
	case repeatPressed(ebiten.KeyUp):
		g.sel.step(1)
	case repeatPressed(ebiten.KeyDown):
		g.sel.step(-1)
	case repeatPressed(ebiten.KeyPageUp):
		g.sel.step(0x10)
	case repeatPressed(ebiten.KeyPageDown):
		g.sel.step(-0x10)
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.sel.nextMapped()
		g.player.Send(g.sel.cmd)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.player.Send(g.sel.cmd)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.player.Send(0)
	}
	return nil
}

func repeatPressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 20 && d%4 == 0)
}

func (g *game) switchTitle(delta int) {
	next := g.titles[(int(g.sel.title)+delta+len(g.titles))%len(g.titles)]
	if err := g.player.SetTitle(next); err != nil {
		g.status = err.Error()
		return
	}
	g.sel = newSelection(next)
	g.trace = g.trace[:0]
	g.status = fmt.Sprintf("%s (%s)", next, next.Board())
	if !next.Supported() {
		g.status += " has no command map"
	}
}

func (g *game) pollEvents() {
	for {
		select {
		case ev, ok := <-g.events:
			if !ok {
				return
			}
			line := fmt.Sprintf("%02x -> %02x %s", ev.Command, ev.Sample, ev.Outcome)
			if ev.Outcome == okisnd.OutcomeTriggered {
				line += fmt.Sprintf(" ch%d", ev.Channel)
			}
			g.trace = append(g.trace, line)
			if len(g.trace) > traceLines {
				g.trace = g.trace[len(g.trace)-traceLines:]
			}
		default:
			return
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(cabinetColor)

	header := image.Rect(10, 10, windowW-10, 80)
	lamps := image.Rect(10, 90, windowW-10, 170)
	scopeRect := image.Rect(10, 180, windowW-10, 300)
	traceRect := image.Rect(10, 310, windowW-10, windowH-10)

	drawPanel(screen, header)
	g.drawText(screen, fmt.Sprintf("TITLE %-9s  COMMAND %02X", g.sel.title, g.sel.cmd), header.Min.X+10, header.Min.Y+8)
	g.drawText(screen, g.sel.describe(), header.Min.X+10, header.Min.Y+8+lineH)

	drawPanel(screen, lamps)
	lampW := (lamps.Dx() - 50) / 4
	for ch := 0; ch < 4; ch++ {
		phrase, busy := g.player.Voice(ch)
		r := image.Rect(lamps.Min.X+10+ch*(lampW+10), lamps.Min.Y+10, lamps.Min.X+10+ch*(lampW+10)+lampW, lamps.Max.Y-10)
		fill := lampOff
		label := fmt.Sprintf("CH%d", ch)
		if busy {
			fill = lampOn
			label += fmt.Sprintf(" %02X", phrase)
		}
		fillRect(screen, r, fill)
		drawBevel(screen, r, edgeHi, edgeLo)
		g.drawText(screen, label, r.Min.X+8, r.Min.Y+(r.Dy()-lineH)/2)
	}

	drawPanel(screen, scopeRect)
	drawScope(screen, scopeRect, g.scope.Snapshot())

	drawPanel(screen, traceRect)
	y := traceRect.Min.Y + 6
	for _, line := range g.trace {
		g.drawText(screen, line, traceRect.Min.X+10, y)
		y += lineH
	}
	g.drawText(screen, g.status, traceRect.Min.X+10, traceRect.Max.Y-lineH-4)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) { return windowW, windowH }

func (g *game) Close() { _ = g.player.Stop() }

func drawScope(screen *ebiten.Image, rect image.Rectangle, samples []float32) {
	w := rect.Dx() - 4
	mid := float64(rect.Min.Y + rect.Dy()/2)
	half := float64(rect.Dy()/2 - 4)
	for x := 0; x < w; x++ {
		s := samples[x*len(samples)/w]
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		h := float64(s) * half
		top := mid
		if h < 0 {
			top += h
			h = -h
		} else {
			top -= h
		}
		ebitenutil.DrawRect(screen, float64(rect.Min.X+2+x), top, 1, h+1, scopeColor)
	}
}

func fillRect(screen *ebiten.Image, r image.Rectangle, c color.Color) {
	ebitenutil.DrawRect(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), c)
}

// drawBevel outlines r one pixel wide, nw on the top and left edges and se
// on the bottom and right.
func drawBevel(screen *ebiten.Image, r image.Rectangle, nw, se color.Color) {
	fillRect(screen, image.Rect(r.Min.X, r.Min.Y, r.Max.X-1, r.Min.Y+1), nw)
	fillRect(screen, image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), nw)
	fillRect(screen, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), se)
	fillRect(screen, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), se)
}

func drawPanel(screen *ebiten.Image, r image.Rectangle) {
	fillRect(screen, r, panelColor)
	drawBevel(screen, r, edgeMid, edgeHi)
}

func (g *game) drawText(screen *ebiten.Image, msg string, x int, y int) {
	if msg == "" {
		return
	}
	img := g.textImg[msg]
	if img == nil {
		img = ebiten.NewImage(max(1, len(msg)*7), 14)
		ebitenutil.DebugPrintAt(img, msg, 0, 0)
		if len(g.textImg) > 1024 {
			g.textImg = make(map[string]*ebiten.Image, 256)
		}
		g.textImg[msg] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func main() {
	titleName := pflag.StringP("title", "t", "kbash", "game: batsugun|kbash|fixeight|dogyuun")
	pflag.Parse()

	title, err := okisnd.ParseTitle(*titleName)
	if err != nil {
		log.Fatal(err)
	}
	g, err := newGame(title)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("okisnd sound test")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
