package game

import (
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/iburimskiy/ambient-field/internal/config"
	"github.com/iburimskiy/ambient-field/internal/field"
)

// Game runs the ambient field in an Ebiten window. It is the field.Host:
// window events are derived from polled state in Update, and frame
// callbacks fire once per Update, which runs in step with the display.
type Game struct {
	log   *zap.Logger
	start time.Time

	surface  *Surface
	renderer *field.Renderer
	mounted  bool

	// logical window size, as last seen by Layout
	width, height int
	ratio         float64
	resized       bool

	cursor    cursorTracker
	listeners map[field.EventKind]map[int]func(field.Event)
	nextSub   int
	frames    map[field.FrameID]func(float64)
	nextFrame field.FrameID
}

var _ field.Host = (*Game)(nil)

func New(log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		log:       log,
		start:     time.Now(),
		surface:   NewSurface(),
		ratio:     1,
		listeners: map[field.EventKind]map[int]func(field.Event){},
		frames:    map[field.FrameID]func(float64){},
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Close()
		return ebiten.Termination
	}

	if !g.mounted {
		// Layout has run by now, so the viewport is known.
		g.mounted = true
		g.resized = false
		g.renderer = field.Mount(g, config.ContainerID, field.WithLogger(g.log.Named("field")))
		g.log.Info("ambient field started", zap.Int("width", g.width), zap.Int("height", g.height), zap.Float64("ratio", g.ratio))
	}
	if g.resized {
		g.resized = false
		g.dispatch(field.Event{Kind: field.EventResize})
	}

	x, y := ebiten.CursorPosition()
	scale := field.ClampScale(g.ratio)
	for _, e := range g.cursor.observe(float64(x)/scale, float64(y)/scale, float64(g.width), float64(g.height), ebiten.IsFocused()) {
		g.dispatch(e)
	}

	g.fireFrames()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	img := g.surface.Image()
	if img == nil {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(iw), float64(sh)/float64(ih))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// Layout keeps the screen at device resolution so the field is drawn
// without upscaling on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := g.ratio
	if m := ebiten.Monitor(); m != nil {
		ratio = m.DeviceScaleFactor()
	}
	if outsideWidth != g.width || outsideHeight != g.height || ratio != g.ratio {
		g.width, g.height, g.ratio = outsideWidth, outsideHeight, ratio
		g.resized = true
	}
	scale := field.ClampScale(ratio)
	return max(1, int(math.Floor(float64(outsideWidth)*scale))), max(1, int(math.Floor(float64(outsideHeight)*scale)))
}

// Close unmounts the renderer.
func (g *Game) Close() {
	if g.renderer != nil {
		g.renderer.Unmount()
		g.log.Info("ambient field stopped", zap.Int("frames", g.renderer.Stats().Frames), zap.Int("faults", g.renderer.Stats().Faults))
		g.renderer = nil
	}
}

func (g *Game) Viewport() (float64, float64) { return float64(g.width), float64(g.height) }
func (g *Game) DevicePixelRatio() float64    { return g.ratio }

func (g *Game) Now() float64 {
	return float64(time.Since(g.start)) / float64(time.Millisecond)
}

func (g *Game) Container(id string) (field.Surface, bool) {
	if id != config.ContainerID {
		return nil, false
	}
	return g.surface, true
}

type subscription struct {
	game *Game
	kind field.EventKind
	id   int
}

func (s subscription) Unsubscribe() {
	delete(s.game.listeners[s.kind], s.id)
}

func (g *Game) Subscribe(kind field.EventKind, fn func(field.Event)) field.Subscription {
	if g.listeners[kind] == nil {
		g.listeners[kind] = map[int]func(field.Event){}
	}
	g.nextSub++
	g.listeners[kind][g.nextSub] = fn
	return subscription{game: g, kind: kind, id: g.nextSub}
}

func (g *Game) dispatch(e field.Event) {
	for _, fn := range g.listeners[e.Kind] {
		fn(e)
	}
}

func (g *Game) RequestFrame(fn func(float64)) field.FrameID {
	g.nextFrame++
	g.frames[g.nextFrame] = fn
	return g.nextFrame
}

func (g *Game) CancelFrame(id field.FrameID) {
	delete(g.frames, id)
}

// fireFrames runs the callbacks queued before this tick. Callbacks queued
// while firing wait for the next one.
func (g *Game) fireFrames() {
	if len(g.frames) == 0 {
		return
	}
	ids := make([]field.FrameID, 0, len(g.frames))
	for id := range g.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	now := g.Now()
	for _, id := range ids {
		fn, ok := g.frames[id]
		if !ok {
			continue
		}
		delete(g.frames, id)
		fn(now)
	}
}
