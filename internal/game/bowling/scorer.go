package bowling

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/cory-johannsen/bowling/internal/game/bowling"

// Recorder receives the outcome of every game a Scorer evaluates.
type Recorder interface {
	ObserveScore(score, frames int)
	ObserveFailure(kind string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveScore(int, int)  {}
func (nopRecorder) ObserveFailure(string) {}

// Option configures a Scorer.
type Option func(*Scorer)

// WithRecorder sends every outcome to r.
func WithRecorder(r Recorder) Option {
	return func(s *Scorer) { s.recorder = r }
}

// WithTracerProvider traces every Score call with a tracer from tp.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Scorer) { s.tracer = tp.Tracer(tracerName) }
}

// Scorer parses and scores roll text, logging, tracing and recording each game.
// Each call is tagged with a fresh game ID.
//
// Scorer is safe for concurrent use.
type Scorer struct {
	parser   *Parser
	logger   *zap.Logger
	recorder Recorder
	tracer   trace.Tracer
}

// NewScorer creates a Scorer that parses with parser and logs to logger.
//
// Precondition: parser and logger must be non-nil.
func NewScorer(parser *Parser, logger *zap.Logger, opts ...Option) *Scorer {
	s := &Scorer{
		parser:   parser,
		logger:   logger,
		recorder: nopRecorder{},
		tracer:   otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score parses text and evaluates it under the parser's rules.
//
// Postcondition: Returns the Result, or the first parse or scoring error. Exactly
// one outcome is recorded per call.
func (s *Scorer) Score(ctx context.Context, text string) (Result, error) {
	gameID := uuid.NewString()
	_, span := s.tracer.Start(ctx, "bowling.Score",
		trace.WithAttributes(attribute.String("bowling.game_id", gameID)),
	)
	defer span.End()

	res, rolls, err := s.evaluate(text)
	span.SetAttributes(attribute.Int("bowling.roll_count", len(rolls)))
	if err != nil {
		kind := KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())
		s.recorder.ObserveFailure(kind.String())
		s.logger.Info("game rejected",
			zap.String("game_id", gameID),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)
		return Result{}, err
	}

	span.SetAttributes(
		attribute.Int("bowling.score", res.Total),
		attribute.Bool("bowling.complete", res.Complete),
	)
	s.recorder.ObserveScore(res.Total, res.Frames)
	s.logger.Debug("game scored",
		zap.String("game_id", gameID),
		zap.Ints("rolls", rolls),
		zap.Int("score", res.Total),
		zap.Int("frames", res.Frames),
		zap.Int("bonus_rolls", res.BonusRolls),
		zap.Bool("complete", res.Complete),
	)
	return res, nil
}

func (s *Scorer) evaluate(text string) (Result, Rolls, error) {
	rolls, err := s.parser.Parse(text)
	if err != nil {
		return Result{}, nil, err
	}
	res, err := Evaluate(s.parser.Rules(), rolls)
	return res, rolls, err
}
