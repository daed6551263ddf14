package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeongen/internal/gamedata"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/world"
)

// seedStride separates the seeds of successive attempts at one level.
const seedStride = 7919

// Level is a built level ready to be shown or served.
type Level struct {
	Spec *gamedata.LevelSpec
	// Seed is the seed that produced the map, which differs from the
	// requested seed when earlier attempts failed to route.
	Seed     int64
	Attempts int
	Map      *world.Map
}

// Builder turns level specs into maps.
type Builder struct {
	log      logr.Logger
	tracer   trace.Tracer
	maxTries uint
	genOpts  []world.Option
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets the logger for the builder and its generators.
func WithBuilderLogger(log logr.Logger) BuilderOption {
	return func(b *Builder) { b.log = log }
}

// WithMaxTries caps generation attempts per Build call.
func WithMaxTries(n uint) BuilderOption {
	return func(b *Builder) { b.maxTries = max(n, 1) }
}

// WithGeneratorOptions passes options to every generator the builder creates.
func WithGeneratorOptions(opts ...world.Option) BuilderOption {
	return func(b *Builder) { b.genOpts = append(b.genOpts, opts...) }
}

// NewBuilder creates a builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		log:      logr.Discard(),
		tracer:   telemetry.Tracer("game"),
		maxTries: DefaultMaxTries,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GeneratorConfig derives generation parameters from a level spec.
func GeneratorConfig(spec *gamedata.LevelSpec) world.Config {
	cfg := world.DefaultConfig()
	if spec.Width > 0 {
		cfg.Width = spec.Width
	}
	if spec.Height > 0 {
		cfg.Height = spec.Height
	}
	if spec.MinRooms > 0 || spec.MaxRooms > 0 {
		cfg.MinRooms, cfg.MaxRooms = spec.MinRooms, spec.MaxRooms
	}
	return cfg
}

// Build produces the map for spec. Predefined levels are parsed from their
// layout. Generated levels retry with derived seeds when corridors cannot be
// routed; configuration errors fail immediately.
func (b *Builder) Build(ctx context.Context, spec *gamedata.LevelSpec, seed int64) (*Level, error) {
	ctx, span := b.tracer.Start(ctx, "level.build", trace.WithAttributes(
		attribute.String("level.id", spec.ID),
		attribute.String("level.kind", spec.Kind),
		attribute.Int64("level.seed", seed),
	))
	defer span.End()

	level, err := b.build(ctx, spec, seed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("level.attempts", level.Attempts),
		attribute.Int64("level.final_seed", level.Seed),
	)
	return level, nil
}

func (b *Builder) build(ctx context.Context, spec *gamedata.LevelSpec, seed int64) (*Level, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if spec.Kind == gamedata.KindPredefined {
		m, err := world.ParseLayout(spec.Layout)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", spec.ID, err)
		}
		return &Level{Spec: spec, Seed: seed, Attempts: 1, Map: m}, nil
	}

	opts := append([]world.Option{world.WithLogger(b.log)}, b.genOpts...)
	gen, err := world.NewGenerator(GeneratorConfig(spec), opts...)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", spec.ID, err)
	}

	attempt := 0
	level, err := backoff.Retry(ctx, func() (*Level, error) {
		s := seed + int64(attempt)*seedStride
		attempt++
		d, err := gen.Generate(ctx, rand.New(rand.NewSource(s)))
		switch {
		case err == nil:
			return &Level{Spec: spec, Seed: s, Attempts: attempt, Map: d.Map}, nil
		case errors.Is(err, world.ErrRouting):
			return nil, err
		default:
			return nil, backoff.Permanent(err)
		}
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(b.maxTries),
		backoff.WithNotify(func(err error, _ time.Duration) {
			b.log.V(1).Info("regenerating level", "level", spec.ID, "attempt", attempt, "error", err.Error())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("level %s after %d attempts: %w", spec.ID, attempt, err)
	}
	return level, nil
}
