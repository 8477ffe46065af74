package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/quietharbor/sanctum/pkg/embedding"
	"github.com/quietharbor/sanctum/pkg/infra/httpx"
)

const (
	defaultEmbeddingsURL  = "https://api.openai.com/v1/embeddings"
	defaultModel          = "text-embedding-3-small"
	defaultDimensions     = 1536
	defaultRequestTimeout = 30 * time.Second
)

type Config struct {
	APIKey     string
	Model      string
	URL        string
	Dimensions int
}

// creator generates embeddings from an OpenAI-compatible embeddings endpoint.
// Calls run through a circuit breaker; a tripped breaker or non-OK response
// surfaces as embedding.ErrProviderUnavailable.
type creator struct {
	client  *fasthttp.Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
	cfg     Config
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingData struct {
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type embeddingResponse struct {
	Data []embeddingData `json:"data"`
}

func NewCreator(client *fasthttp.Client, breaker httpx.CircuitBreaker, logger *logrus.Logger, cfg Config) embedding.Creator {
	if cfg.URL == "" {
		cfg.URL = defaultEmbeddingsURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = defaultDimensions
	}
	return &creator{
		client:  client,
		breaker: breaker,
		logger:  logger,
		cfg:     cfg,
	}
}

func (s *creator) Dimensions() int { return s.cfg.Dimensions }

func (s *creator) Generate(ctx context.Context, text string) (*embedding.Embedding, error) {
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: embeddings API key not configured", embedding.ErrProviderUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(embeddingRequest{
		Model: s.cfg.Model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.cfg.URL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.cfg.APIKey))
	req.SetBody(payload)

	err = s.breaker.Execute(func() error {
		return s.doRequestWithContext(ctx, req, resp)
	})
	if err != nil {
		s.logger.WithError(err).Error("embedding request failed")
		return nil, fmt.Errorf("%w: %v", embedding.ErrProviderUnavailable, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		s.logger.WithField("status", resp.StatusCode()).Error("non-OK response from embeddings API")
		return nil, fmt.Errorf("%w: status %d", embedding.ErrProviderUnavailable, resp.StatusCode())
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(resp.Body(), &embResp); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}

	if len(embResp.Data) == 0 || len(embResp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", embedding.ErrProviderUnavailable)
	}

	value := embResp.Data[0].Embedding
	if len(value) != s.cfg.Dimensions {
		s.logger.Warnf("embedding size %d does not match expected dimension %d", len(value), s.cfg.Dimensions)
	}

	normalizeVector(value)

	return &embedding.Embedding{
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *creator) doRequestWithContext(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.client.DoTimeout(req, resp, defaultRequestTimeout)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func normalizeVector(v []float64) {
	var sumSquares float64
	for _, val := range v {
		sumSquares += val * val
	}

	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return
	}

	for i := range v {
		v[i] /= norm
	}
}
