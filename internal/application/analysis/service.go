package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/code-doctor/internal/application"
	domai "github.com/bryanwahyu/code-doctor/internal/domain/ai"
	domain "github.com/bryanwahyu/code-doctor/internal/domain/analysis"
	"github.com/bryanwahyu/code-doctor/internal/infra/ai/prompt"
)

// Service runs one analysis per call and holds no per-request state,
// so a single instance is safe for concurrent use.
type Service struct {
	Client domai.Client
	Clock  application.Clock
	Logger *zap.Logger
	// Timeout bounds a single model call; zero leaves it to ctx.
	Timeout time.Duration
}

func NewService(client domai.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Client: client, Clock: application.SystemClock{}, Logger: logger}
}

// Command is the raw, unvalidated input from a transport.
type Command struct {
	Code         string `json:"code"`
	Language     string `json:"language"`
	ErrorMessage string `json:"errorMessage"`
}

type Result struct {
	ID       string               `json:"id"`
	Provider string               `json:"provider"`
	Analysis domain.FinalAnalysis `json:"analysis"`
	// Fallback is true when the model reply could not be decoded and the
	// safe record was used instead.
	Fallback bool          `json:"fallback"`
	Duration time.Duration `json:"-"`
}

// Analyze validates cmd, asks the model and repairs its reply.
// Only domain.ErrInvalidRequest and upstream errors from the model client are returned.
func (s *Service) Analyze(ctx context.Context, cmd Command) (*Result, error) {
	req, err := domain.NewRequest(cmd.Code, cmd.Language, cmd.ErrorMessage)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	log := s.Logger.With(
		zap.String("analysis_id", id),
		zap.String("language", req.Language),
		zap.String("provider", s.Client.Name()),
	)
	start := s.Clock.Now()

	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.Timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
	}
	raw, err := s.Client.Complete(callCtx, prompt.Build(req))
	cancel()
	if err != nil {
		log.Error("model call failed", zap.Error(err))
		return nil, err
	}

	res := s.repair(log, req, raw)
	res.ID = id
	res.Provider = s.Client.Name()
	res.Duration = application.Since(s.Clock, start)

	log.Info("analysis complete",
		zap.Bool("fallback", res.Fallback),
		zap.String("error_type", res.Analysis.ErrorType),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

// Repair runs the extraction pipeline over a reply obtained elsewhere.
func (s *Service) Repair(cmd Command, raw string) (*Result, error) {
	req, err := domain.NewRequest(cmd.Code, cmd.Language, cmd.ErrorMessage)
	if err != nil {
		return nil, err
	}
	return s.repair(s.Logger, req, raw), nil
}

func (s *Service) repair(log *zap.Logger, req domain.Request, raw string) *Result {
	res := &Result{}
	rec, err := domain.ParseRecord(raw)
	if err != nil {
		res.Fallback = true
		if errors.Is(err, domain.ErrNoJSONFound) {
			log.Warn("no JSON object in model reply, using fallback record", zap.Int("reply_bytes", len(raw)))
		} else {
			log.Warn("JSON parse failed, attempting recovery", zap.Error(err))
		}
		rec = domain.FallbackRecord(raw, req.Code)
	}
	res.Analysis = domain.Normalize(rec, req)
	return res
}
