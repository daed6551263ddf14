package world

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/telemetry"
)

// Dungeon is the result of one generation: the playable map plus the
// structures it was built from.
type Dungeon struct {
	Map         *Map
	Tree        *Tree
	Connections []Connection
	// Repaired counts the corridors added after the tree walk to
	// reconnect isolated rooms.
	Repaired int
}

// Generator produces dungeons from a validated Config.
type Generator struct {
	cfg    Config
	log    logr.Logger
	tracer trace.Tracer

	generations metric.Int64Counter
	duration    metric.Float64Histogram
	repairs     metric.Int64Counter
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for generation diagnostics.
func WithLogger(log logr.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) { g.tracer = t }
}

// WithMeter records generation metrics on m instead of the global meter.
func WithMeter(m metric.Meter) Option {
	return func(g *Generator) { g.instrument(m) }
}

// NewGenerator validates cfg and returns a generator for it.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:    cfg,
		log:    logr.Discard(),
		tracer: telemetry.Tracer("world"),
	}
	g.instrument(telemetry.Meter("world"))
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Generator) instrument(m metric.Meter) {
	fallback := metricnoop.NewMeterProvider().Meter("world")

	var err error
	if g.generations, err = m.Int64Counter("dungeon.generations",
		metric.WithDescription("Dungeon generations by outcome")); err != nil {
		g.generations, _ = fallback.Int64Counter("dungeon.generations")
	}
	if g.duration, err = m.Float64Histogram("dungeon.generation.duration",
		metric.WithDescription("Time spent generating one dungeon"), metric.WithUnit("ms")); err != nil {
		g.duration, _ = fallback.Float64Histogram("dungeon.generation.duration")
	}
	if g.repairs, err = m.Int64Counter("dungeon.repair.connections",
		metric.WithDescription("Corridors added by connectivity repair")); err != nil {
		g.repairs, _ = fallback.Int64Counter("dungeon.repair.connections")
	}
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() Config { return g.cfg }

// Generate builds one dungeon from rng. The same seed and configuration
// always produce the same map. On error no dungeon is returned.
func (g *Generator) Generate(ctx context.Context, rng *rand.Rand) (*Dungeon, error) {
	ctx, span := g.tracer.Start(ctx, "dungeon.generate", trace.WithAttributes(
		attribute.Int("dungeon.width", g.cfg.Width),
		attribute.Int("dungeon.height", g.cfg.Height),
	))
	defer span.End()

	startTime := time.Now()
	d, err := g.generate(ctx, rng)
	elapsed := float64(time.Since(startTime).Microseconds()) / 1000

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.log.Error(err, "dungeon generation failed", "width", g.cfg.Width, "height", g.cfg.Height)
	} else {
		span.SetAttributes(
			attribute.Int("dungeon.room_count", len(d.Map.Rooms)),
			attribute.Int("dungeon.connection_count", len(d.Connections)),
			attribute.Int("dungeon.repair_count", d.Repaired),
			attribute.Int("dungeon.tree_depth", d.Tree.Depth()),
			attribute.String("dungeon.id", d.Map.ID.String()),
			attribute.Int64("dungeon.fingerprint", int64(d.Map.Fingerprint())),
		)
		g.repairs.Add(ctx, int64(d.Repaired))
		g.log.V(1).Info("dungeon generated", "id", d.Map.ID, "rooms", len(d.Map.Rooms),
			"connections", len(d.Connections), "repaired", d.Repaired, "ms", elapsed)
	}
	g.generations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	g.duration.Record(ctx, elapsed, metric.WithAttributes(attribute.String("outcome", outcome)))
	return d, err
}

func (g *Generator) generate(ctx context.Context, rng *rand.Rand) (*Dungeon, error) {
	cfg := g.cfg

	tree, err := g.partition(ctx, rng)
	if err != nil {
		return nil, err
	}

	placer := RoomPlacer{MinRoom: cfg.MinRoom, MaxRoom: cfg.MaxRoom, Margin: cfg.Margin}
	if err := g.phase(ctx, "dungeon.place_rooms", func(context.Context) error {
		return placer.PlaceRooms(tree, rng)
	}); err != nil {
		return nil, err
	}

	router := NewRouter(tree, cfg.Width, cfg.Height, cfg, rng)
	var conns []Connection
	if err := g.phase(ctx, "dungeon.connect", func(ctx context.Context) error {
		var failures []*RoutingError
		conns, failures = Connect(tree, router)
		for _, f := range failures {
			g.log.V(1).Info("subtrees left for repair", "start", f.Start, "end", f.End, "reason", f.Reason)
		}
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("dungeon.unrouted", len(failures)))
		return nil
	}); err != nil {
		return nil, err
	}

	walked := len(conns)
	if err := g.phase(ctx, "dungeon.repair", func(context.Context) error {
		conns, err = Repair(tree, conns, router)
		return err
	}); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, span := g.tracer.Start(ctx, "dungeon.materialize")
	tiles := Materialize(tree, conns, cfg.Width, cfg.Height)
	span.End()

	leaves := tree.Leaves()
	start := tree.regions[leaves[0]].Room.Center()

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return nil, err
	}
	m, err := newMap(id, cfg.Width, cfg.Height, start, tiles)
	if err != nil {
		return nil, err
	}
	m.Rooms = tree.Rooms()

	if cfg.PlaceStairs {
		if err := placeStairs(m, tree, conns, leaves[0]); err != nil {
			return nil, err
		}
	}

	return &Dungeon{Map: m, Tree: tree, Connections: conns, Repaired: len(conns) - walked}, nil
}

func (g *Generator) partition(ctx context.Context, rng *rand.Rand) (*Tree, error) {
	cfg := g.cfg
	p := Partitioner{
		MinRegion:  cfg.MinRegion,
		MinLeaves:  cfg.MinRooms,
		MaxLeaves:  cfg.targetRooms(rng),
		SplitRatio: cfg.SplitRatio,
	}

	var tree *Tree
	err := g.phase(ctx, "dungeon.partition", func(ctx context.Context) error {
		var err error
		if tree, err = p.Partition(geom.R(0, 0, cfg.Width, cfg.Height), rng); err != nil {
			return err
		}
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("dungeon.leaf_count", len(tree.Leaves())))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// phase runs fn inside a child span, failing early when ctx is done.
func (g *Generator) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, span := g.tracer.Start(ctx, name)
	defer span.End()
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
