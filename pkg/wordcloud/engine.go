package wordcloud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/logger"
)

// EngineConfig aggregates the tunables of the generation pipeline
type EngineConfig struct {
	Cache       *CacheConfig       `yaml:"cache"`
	Loader      *LoaderConfig      `yaml:"loader"`
	Partitioner *PartitionerConfig `yaml:"partitioner"`
}

// DefaultEngineConfig returns the default engine configuration
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Cache:       DefaultCacheConfig(),
		Loader:      DefaultLoaderConfig(),
		Partitioner: DefaultPartitionerConfig(),
	}
}

// Engine is the word cloud generation engine: the single entry point the
// transport layer calls. Safe for concurrent use; the result cache is the
// only shared mutable state.
type Engine struct {
	loader      *CorpusLoader
	partitioner *Partitioner
	validator   *Validator
	assembler   *Assembler
	cache       ResultCache
	log         *logger.Logger
	tracer      trace.Tracer
}

// NewEngine composes the generation pipeline. The cache is constructor
// injected so its lifecycle is owned by whoever composes the engine; pass
// nil to fall back to an in-memory cache with default settings. Dictionaries
// are data: pass nil for the built-in set.
func NewEngine(store CorpusStore, dicts *Dictionaries, cache ResultCache, config *EngineConfig, log *logger.Logger) *Engine {
	if config == nil {
		config = DefaultEngineConfig()
	}
	if dicts == nil {
		dicts = DefaultDictionaries()
	}
	if cache == nil {
		cache = NewMemoryResultCache(config.Cache)
	}
	registry := NewRegistry(dicts)
	tagger := NewTagger(dicts)
	return &Engine{
		loader:      NewCorpusLoader(config.Loader, store),
		partitioner: NewPartitioner(config.Partitioner, registry, log),
		validator:   NewValidator(dicts),
		assembler:   NewAssembler(tagger),
		cache:       cache,
		log:         log,
		tracer:      otel.Tracer("wordcloud"),
	}
}

// Cache exposes the engine's result cache
func (e *Engine) Cache() ResultCache {
	return e.cache
}

// Generate produces the word cloud for a request, consulting the cache
// first. Single-dataset requests run the pipeline directly; multi-dataset
// requests fan out per dataset and merge.
func (e *Engine) Generate(ctx context.Context, req *WordCloudRequest) (*WordCloudResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "wordcloud.Generate",
		trace.WithAttributes(
			attribute.String("mode", string(req.Mode)),
			attribute.Int("dataset_count", len(req.DatasetIDs)),
		))
	defer span.End()

	started := time.Now()
	key := CacheKey(req)
	if cached, ok := e.cache.Get(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		cached.CacheHit = true
		cached.GenerationTime = time.Since(started)
		return cached, nil
	}

	var result *WordCloudResult
	var err error
	if len(req.DatasetIDs) == 1 {
		result, err = e.generateSingle(ctx, req.DatasetIDs[0], req, req.MaxWords)
	} else {
		result, err = e.aggregate(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	result.GenerationTime = time.Since(started)
	e.cache.Put(ctx, key, result)
	return result, nil
}

// InvalidateCache drops cached results referencing datasetID, or all cached
// results when datasetID is nil
func (e *Engine) InvalidateCache(ctx context.Context, datasetID *uuid.UUID) {
	e.cache.Invalidate(ctx, datasetID)
	if datasetID != nil {
		e.log.WithField("dataset_id", datasetID.String()).Info("cache invalidated for dataset")
	} else {
		e.log.Info("cache fully invalidated")
	}
}

// generateSingle runs the full pipeline for one dataset
func (e *Engine) generateSingle(ctx context.Context, datasetID uuid.UUID, req *WordCloudRequest, limit int) (*WordCloudResult, error) {
	ctx, span := e.tracer.Start(ctx, "wordcloud.generateSingle",
		trace.WithAttributes(attribute.String("dataset_id", datasetID.String())))
	defer span.End()

	corpus, err := e.loader.Load(ctx, datasetID, req)
	if err != nil {
		return nil, err
	}

	result := &WordCloudResult{
		DatasetIDs:       []uuid.UUID{datasetID},
		Mode:             req.Mode,
		TotalQuestions:   corpus.MatchedRows,
		FilteredRowCount: corpus.MatchedRows,
	}
	if corpus.MatchedRows == 0 || corpus.Text == "" {
		result.Words = []WordRecord{}
		result.Message = "no rows matched the requested filters"
		return result, nil
	}

	cleaned := e.validator.Clean(corpus.Text, corpus.Tenant, req)
	counts, err := e.partitioner.Classify(ctx, cleaned, req.Mode)
	if err != nil {
		return nil, err
	}
	records := e.assembler.Assemble(counts, req.Mode, limit, req.Sentiments)
	// final pass: classifier dictionaries must not reintroduce blacklisted
	// tenant terms
	records = e.validator.Validate(records, corpus.Tenant, req)
	// re-normalize in case validation removed the most frequent record
	normalize(records)

	result.Words = records
	result.WordCount = len(records)
	return result, nil
}

// aggregate fans the single-dataset pipeline out over every requested
// dataset and merges the resulting multisets by additive frequency. Each
// per-dataset run is cached independently at an inflated term cap so merging
// is not starved by premature truncation.
func (e *Engine) aggregate(ctx context.Context, req *WordCloudRequest) (*WordCloudResult, error) {
	ctx, span := e.tracer.Start(ctx, "wordcloud.aggregate")
	defer span.End()

	perDatasetLimit := req.MaxWords * 3
	if perDatasetLimit < 100 {
		perDatasetLimit = 100
	}

	merged := NewWordCounts()
	out := &WordCloudResult{Mode: req.Mode}
	for _, datasetID := range req.DatasetIDs {
		sub := *req
		sub.DatasetIDs = []uuid.UUID{datasetID}
		sub.MaxWords = perDatasetLimit

		partial, err := e.cachedSingle(ctx, datasetID, &sub)
		if err != nil {
			if errors.Is(err, ErrDatasetNotFound) {
				e.log.WithField("dataset_id", datasetID.String()).
					Warn("skipping unknown dataset in multi-dataset request")
				out.SkippedDatasets = append(out.SkippedDatasets, datasetID)
				continue
			}
			return nil, err
		}
		if len(partial.Words) == 0 {
			e.log.WithField("dataset_id", datasetID.String()).
				Info("skipping dataset with empty corpus in multi-dataset request")
			out.SkippedDatasets = append(out.SkippedDatasets, datasetID)
			continue
		}

		out.DatasetIDs = append(out.DatasetIDs, datasetID)
		out.TotalQuestions += partial.TotalQuestions
		out.FilteredRowCount += partial.FilteredRowCount
		for _, rec := range partial.Words {
			merged.Add(rec.Word, rec.Frequency)
		}
	}

	if len(out.DatasetIDs) == 0 {
		return nil, fmt.Errorf("%w: %d dataset(s) requested", ErrNoValidDatasets, len(req.DatasetIDs))
	}

	out.Words = e.assembler.Assemble(merged, req.Mode, req.MaxWords, req.Sentiments)
	out.WordCount = len(out.Words)
	return out, nil
}

// cachedSingle runs the single-dataset pipeline through the per-dataset
// cache used by aggregation
func (e *Engine) cachedSingle(ctx context.Context, datasetID uuid.UUID, sub *WordCloudRequest) (*WordCloudResult, error) {
	key := CacheKey(sub)
	if cached, ok := e.cache.Get(ctx, key); ok {
		return cached, nil
	}
	partial, err := e.generateSingle(ctx, datasetID, sub, sub.MaxWords)
	if err != nil {
		return nil, err
	}
	e.cache.Put(ctx, key, partial)
	return partial, nil
}
