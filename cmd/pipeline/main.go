package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/quietharbor/sanctum/pkg/anonymizer"
	"github.com/quietharbor/sanctum/pkg/config"
	"github.com/quietharbor/sanctum/pkg/embedding"
	hashingembedding "github.com/quietharbor/sanctum/pkg/infra/embedding/hashing"
	openaiembedding "github.com/quietharbor/sanctum/pkg/infra/embedding/openai"
	"github.com/quietharbor/sanctum/pkg/infra/httpx"
	"github.com/quietharbor/sanctum/pkg/infra/metrics"
	"github.com/quietharbor/sanctum/pkg/infra/repository"
	"github.com/quietharbor/sanctum/pkg/moderation"
	"github.com/quietharbor/sanctum/pkg/pipeline"
	"github.com/quietharbor/sanctum/pkg/sentiment"
	"github.com/quietharbor/sanctum/pkg/similarity"
	"github.com/quietharbor/sanctum/pkg/types"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build pipeline")
	}

	ctx := context.Background()

	if len(os.Args) > 1 && os.Args[1] == "search" {
		os.Exit(runSearch(ctx, p, logger, os.Stdin, os.Stdout))
	}
	os.Exit(runProcess(ctx, p, logger, os.Stdin, os.Stdout))
}

func buildPipeline(cfg *config.Config, logger *logrus.Logger) (*pipeline.Pipeline, error) {
	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder(prometheus.DefaultRegisterer)
	}

	var analyzer sentiment.Analyzer
	switch cfg.Anonymizer.Sentiment {
	case "vader":
		analyzer = sentiment.NewVaderAnalyzer()
	default:
		analyzer = sentiment.NewKeywordAnalyzer()
	}

	settings, err := moderation.DecodeSettings(cfg.Moderation)
	if err != nil {
		return nil, err
	}

	var creator embedding.Creator
	switch cfg.Embedding.Provider {
	case "openai":
		breaker := httpx.NewCircuitBreaker("embeddings", 30*time.Second, 5, 5)
		creator = openaiembedding.NewCreator(&fasthttp.Client{}, breaker, logger, openaiembedding.Config{
			APIKey:     cfg.Embedding.APIKey,
			Model:      cfg.Embedding.Model,
			URL:        cfg.Embedding.URL,
			Dimensions: cfg.Embedding.Dimensions,
		})
	default:
		creator = hashingembedding.NewCreator(cfg.Embedding.Dimensions)
	}

	var repo similarity.Repository = similarity.NewMemoryRepository()
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repo = repository.NewRedisCorpusRepository(client)
	}

	anon := anonymizer.New(cfg.Anonymizer.SaltSecret, analyzer, logger)
	engine := moderation.NewEngine(settings, logger, recorder)
	index := similarity.NewIndex(creator, repo, logger, recorder)

	return pipeline.New(anon, engine, index, logger, recorder), nil
}

// runProcess reads one RawSubmission as JSON from in and emits the pipeline
// outcome on out. The exit code is nonzero for any failed run, including one
// where moderation finished but indexing did not: the partial outcome is
// still emitted so callers can inspect the verdict.
func runProcess(ctx context.Context, p *pipeline.Pipeline, logger *logrus.Logger, in io.Reader, out io.Writer) int {
	input, err := io.ReadAll(in)
	if err != nil {
		logger.WithError(err).Error("failed to read input")
		return 1
	}

	var sub types.RawSubmission
	if err := json.Unmarshal(input, &sub); err != nil {
		logger.WithError(err).Error("failed to parse submission")
		return 1
	}

	outcome, err := p.Process(ctx, sub)
	if err != nil {
		logger.WithError(err).Error("pipeline run failed")
		if outcome != nil {
			emit(out, outcome, logger)
		}
		return 1
	}

	emit(out, outcome, logger)
	return 0
}

// runSearch reads query text from in and emits ranked matches with
// explanations.
func runSearch(ctx context.Context, p *pipeline.Pipeline, logger *logrus.Logger, in io.Reader, out io.Writer) int {
	query, err := io.ReadAll(in)
	if err != nil {
		logger.WithError(err).Error("failed to read input")
		return 1
	}

	matches, err := p.FindSimilar(ctx, string(query), similarity.DefaultTopK, similarity.DefaultThreshold, similarity.Filters{})
	if err != nil {
		logger.WithError(err).Error("search failed")
		return 1
	}

	type explained struct {
		similarity.Match
		Explanation string `json:"explanation"`
	}
	results := make([]explained, 0, len(matches))
	for _, m := range matches {
		results = append(results, explained{Match: m, Explanation: similarity.Explain(m)})
	}

	emit(out, results, logger)
	return 0
}

func emit(out io.Writer, v interface{}, logger *logrus.Logger) {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode output")
	}
}
