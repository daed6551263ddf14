package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongen/internal/gamedata"
	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/ui"
)

// Game is the terminal level viewer.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	builder  *Builder
	levels   *gamedata.LevelRegistry
	tileSets *gamedata.TileSetRegistry
	log      logr.Logger

	rng    *rand.Rand
	index  int
	seed   int64
	level  *Level
	marker geom.Coordinates
	state  State
	err    error

	running bool
}

// New creates a viewer on the terminal.
func New(cfg Config, levels *gamedata.LevelRegistry, tileSets *gamedata.TileSetRegistry, builder *Builder, log logr.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, cfg, levels, tileSets, builder, log)
}

// NewWithScreen creates a viewer drawing on an initialized screen.
func NewWithScreen(screen *ui.Screen, cfg Config, levels *gamedata.LevelRegistry, tileSets *gamedata.TileSetRegistry, builder *Builder, log logr.Logger) (*Game, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	index := 0
	if cfg.Level != "" {
		if index = levels.Index(cfg.Level); index < 0 {
			return nil, fmt.Errorf("unknown level %q", cfg.Level)
		}
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		builder:  builder,
		levels:   levels,
		tileSets: tileSets,
		log:      log,
		rng:      rand.New(rand.NewSource(seed)),
		index:    index,
		seed:     seed,
		running:  true,
	}, nil
}

// Run executes the main viewer loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	g.load(ctx)
	initSpan.SetAttributes(
		attribute.String("level.id", g.levels.At(g.index).ID),
		attribute.Int64("level.seed", g.seed),
		attribute.String("game.state", g.state.String()),
	)
	initSpan.End()

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// load builds the current level, keeping the viewer running on failure.
func (g *Game) load(ctx context.Context) {
	spec := g.levels.At(g.index)
	level, err := g.builder.Build(ctx, spec, g.seed)
	if err != nil {
		g.log.Error(err, "level build failed", "level", spec.ID, "seed", g.seed)
		g.level, g.err, g.state = nil, err, StateFailed
		return
	}
	g.level, g.err, g.state = level, nil, StateView
	g.marker = level.Map.Start
}

func (g *Game) render() {
	spec := g.levels.At(g.index)
	if g.state == StateFailed {
		g.screen.Clear()
		g.renderer.RenderMessage(fmt.Sprintf("%s: %v", spec.Name, g.err), 0)
		g.renderer.RenderMessage("r: reseed  n/p: next/previous level  q: quit", 1)
		g.screen.Show()
		return
	}

	m := g.level.Map
	g.renderer.Render(ui.View{
		Map:     m,
		TileSet: g.tileSets.Resolve(spec.TileSet),
		Marker:  g.marker,
		Status: []string{
			fmt.Sprintf("%s (depth %d)  seed %d  attempts %d  rooms %d  %dx%d",
				spec.Name, spec.Depth, g.level.Seed, g.level.Attempts, len(m.Rooms), m.Width, m.Height),
			fmt.Sprintf("%v %s  fingerprint %016x", g.marker, m.Tile(g.marker), m.Fingerprint()),
		},
	})
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// The screen was finalized.
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(geom.North)
	case tcell.KeyDown:
		g.tryMove(geom.South)
	case tcell.KeyLeft:
		g.tryMove(geom.West)
	case tcell.KeyRight:
		g.tryMove(geom.East)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'n':
			g.index = (g.index + 1) % g.levels.Count()
			g.load(ctx)
		case 'p':
			g.index = (g.index + g.levels.Count() - 1) % g.levels.Count()
			g.load(ctx)
		case 'r':
			g.seed = g.rng.Int63()
			g.load(ctx)
		}
	}
}

// tryMove moves the marker one cell if the target can be walked on.
func (g *Game) tryMove(d geom.Direction) {
	if g.level == nil {
		return
	}
	if next := g.marker.Step(d); g.level.Map.IsPassable(next) {
		g.marker = next
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
