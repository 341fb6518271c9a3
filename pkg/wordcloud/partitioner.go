package wordcloud

import (
	"context"
	"strings"
	"sync"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/logger"
)

// PartitionerConfig controls when and how oversized corpora are classified
// in parallel
type PartitionerConfig struct {
	// ParallelThreshold is the corpus character length above which
	// classification is split across workers
	ParallelThreshold int `yaml:"parallel_threshold"`
	// NumSegments is the number of word-boundary-safe segments
	NumSegments int `yaml:"num_segments"`
	// NumWorkers bounds concurrent classifier invocations
	NumWorkers int `yaml:"num_workers"`
}

// DefaultPartitionerConfig returns the default partitioner configuration
func DefaultPartitionerConfig() *PartitionerConfig {
	return &PartitionerConfig{
		ParallelThreshold: 1_000_000,
		NumSegments:       4,
		NumWorkers:        4,
	}
}

// Partitioner splits oversized corpora into word-boundary-safe segments and
// classifies them concurrently on a bounded worker pool. Below the threshold
// classification runs inline.
type Partitioner struct {
	config   *PartitionerConfig
	registry *Registry
	log      *logger.Logger
}

// NewPartitioner creates a partitioner over the given classifier registry
func NewPartitioner(config *PartitionerConfig, registry *Registry, log *logger.Logger) *Partitioner {
	if config == nil {
		config = DefaultPartitionerConfig()
	}
	return &Partitioner{config: config, registry: registry, log: log}
}

// Classify extracts the word multiset for text, going parallel only when the
// text exceeds the configured threshold. Segment merge order is fixed, so
// tie-break ordering stays deterministic across runs. Cancellation surfaces
// as an error; a partially classified corpus is never returned.
func (p *Partitioner) Classify(ctx context.Context, text string, mode Mode) (*WordCounts, error) {
	if len(text) <= p.config.ParallelThreshold {
		return p.registry.Classify(text, mode), nil
	}

	segments := p.split(text, p.config.NumSegments)
	results := make([]*WordCounts, len(segments))

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.config.NumWorkers)
	for i, segment := range segments {
		if err := ctx.Err(); err != nil {
			// already-running segments still finish, but their counts are
			// discarded rather than merged into a truncated result
			wg.Wait()
			return nil, err
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(idx int, seg string) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				// a failed segment contributes nothing rather than
				// failing the whole request
				if r := recover(); r != nil {
					p.log.WithField("segment", idx).WithField("panic", r).
						Warn("segment classification failed, dropping partial counts")
					results[idx] = NewWordCounts()
				}
			}()
			results[idx] = p.registry.Classify(seg, mode)
		}(i, segment)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := NewWordCounts()
	for _, partial := range results {
		merged.Merge(partial)
	}
	return merged, nil
}

// split divides text into n segments, pulling each split point back to the
// nearest preceding whitespace when one exists within the trailing 20% of
// the intended segment. A hard cut is accepted otherwise; tokens straddling
// a hard cut are counted as two fragments, a documented approximation.
func (p *Partitioner) split(text string, n int) []string {
	if n <= 1 || len(text) == 0 {
		return []string{text}
	}
	segments := make([]string, 0, n)
	segSize := len(text) / n
	start := 0
	for i := 0; i < n-1; i++ {
		end := start + segSize
		if end >= len(text) {
			break
		}
		window := segSize / 5
		if idx := strings.LastIndexAny(text[end-window:end], " \t\n\r"); idx >= 0 {
			end = end - window + idx + 1
		}
		segments = append(segments, text[start:end])
		start = end
	}
	segments = append(segments, text[start:])
	return segments
}
