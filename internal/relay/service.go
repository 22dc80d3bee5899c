package relay

//go:generate mockgen -destination=./service_mock_test.go -package=relay -source=service.go Service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidRequest is returned when an AskRequest cannot be turned into an upstream call.
var ErrInvalidRequest = errors.New("invalid request")

// Service defines the business logic for the relay.
type Service interface {
	// Ask forwards the request upstream and returns the extracted answer.
	Ask(ctx context.Context, req *AskRequest) (string, error)
}

// Options are the fixed, per-deployment parts of every upstream request.
type Options struct {
	SystemInstruction string
	ThinkingLevel     string
}

// service is the concrete implementation of the Service interface.
type service struct {
	upstream UpstreamClient
	opts     Options
	log      *zap.Logger
}

// NewService is the constructor for the relay service.
func NewService(upstream UpstreamClient, opts Options, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		upstream: upstream,
		opts:     opts,
		log:      log,
	}
}

// Ask implements the Service interface.
func (s *service) Ask(ctx context.Context, req *AskRequest) (string, error) {
	body, err := s.buildUpstreamRequest(req)
	if err != nil {
		return "", err
	}

	exchangeID := uuid.NewString()
	log := s.log.With(zap.String("exchange_id", exchangeID))

	raw, err := s.upstream.GenerateContent(ctx, body)
	if err != nil {
		log.Error("upstream call failed", zap.Error(err))
		return "", fmt.Errorf("upstream client failed: %w", err)
	}

	log.Info("upstream response", zap.ByteString("body", raw))
	return Extract(raw), nil
}

// buildUpstreamRequest normalizes the two accepted input shapes into one contents array
// and attaches the system instruction and generation config.
func (s *service) buildUpstreamRequest(req *AskRequest) (*UpstreamRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidRequest)
	}
	hasPrompt := strings.TrimSpace(req.Prompt) != ""
	hasContents := len(req.Contents) > 0

	var contents []Message
	switch {
	case hasPrompt && hasContents:
		return nil, fmt.Errorf("%w: send either prompt or contents, not both", ErrInvalidRequest)
	case hasContents:
		contents = req.Contents
	case hasPrompt:
		msg, err := json.Marshal(userMessage{
			Role:  "user",
			Parts: []TextPart{{Text: req.Prompt}},
		})
		if err != nil {
			return nil, fmt.Errorf("could not wrap prompt: %w", err)
		}
		contents = []Message{msg}
	default:
		return nil, fmt.Errorf("%w: prompt or contents required", ErrInvalidRequest)
	}

	return &UpstreamRequest{
		Contents: contents,
		SystemInstruction: SystemInstruction{
			Parts: []TextPart{{Text: s.opts.SystemInstruction}},
		},
		GenerationConfig: GenerationConfig{
			ThinkingConfig: ThinkingConfig{ThinkingLevel: s.opts.ThinkingLevel},
		},
	}, nil
}
