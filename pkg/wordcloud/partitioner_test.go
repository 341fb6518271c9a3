package wordcloud

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/logger"
)

func newTestPartitioner(threshold int) *Partitioner {
	config := &PartitionerConfig{
		ParallelThreshold: threshold,
		NumSegments:       4,
		NumWorkers:        4,
	}
	return NewPartitioner(config, newTestRegistry(), logger.NewDefaultLogger("test"))
}

func TestPartitioner_InlineBelowThreshold(t *testing.T) {
	p := newTestPartitioner(1_000_000)
	counts, err := p.Classify(context.Background(), "contract dispute contract", ModeAll)

	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if counts.Count("contract") != 2 || counts.Count("dispute") != 1 {
		t.Errorf("unexpected counts: contract=%d dispute=%d",
			counts.Count("contract"), counts.Count("dispute"))
	}
}

func TestPartitioner_ParallelMatchesInline(t *testing.T) {
	// whitespace-separated corpus: boundary pullback makes the parallel
	// result exactly equal the single-threaded one
	text := strings.Repeat("billing dispute settlement review contract workflow ", 500)

	inline := newTestRegistry().Classify(text, ModeAll)
	parallel, err := newTestPartitioner(100).Classify(context.Background(), text, ModeAll)

	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if inline.Len() != parallel.Len() {
		t.Fatalf("distinct word counts differ: inline=%d parallel=%d", inline.Len(), parallel.Len())
	}
	for _, word := range inline.Words() {
		if inline.Count(word) != parallel.Count(word) {
			t.Errorf("count mismatch for %q: inline=%d parallel=%d",
				word, inline.Count(word), parallel.Count(word))
		}
	}
}

func TestPartitioner_CancelledContextFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	text := strings.Repeat("contract dispute ", 50)

	counts, err := newTestPartitioner(100).Classify(ctx, text, ModeAll)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if counts != nil {
		t.Error("a cancelled classification must not return partial counts")
	}
}

// flakyClassifier panics on segments carrying a marker token
type flakyClassifier struct {
	inner Classifier
}

func (c *flakyClassifier) Extract(text string) *WordCounts {
	if strings.Contains(text, "kaboom") {
		panic("segment failure")
	}
	return c.inner.Extract(text)
}

func TestPartitioner_PanickingSegmentDropped(t *testing.T) {
	flaky := &flakyClassifier{inner: &allClassifier{}}
	registry := &Registry{
		fallback:    flaky,
		classifiers: map[Mode]Classifier{ModeAll: flaky},
	}
	config := &PartitionerConfig{ParallelThreshold: 100, NumSegments: 4, NumWorkers: 4}
	p := NewPartitioner(config, registry, logger.NewDefaultLogger("test"))

	// the marker sits at the tail, so only the last segment panics
	text := strings.Repeat("alpha beta ", 100) + "kaboom"
	counts, err := p.Classify(context.Background(), text, ModeAll)

	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if counts.Count("kaboom") != 0 {
		t.Error("the panicking segment must contribute nothing")
	}
	got := counts.Count("alpha")
	if got == 0 || got >= 100 {
		t.Errorf("alpha count = %d, want partial counts from the surviving segments", got)
	}
}

func TestPartitioner_SplitRespectsWordBoundaries(t *testing.T) {
	p := newTestPartitioner(10)
	text := strings.Repeat("boundary token stream ", 100)

	segments := p.split(text, 4)

	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segments))
	}
	var rejoined strings.Builder
	for _, seg := range segments {
		rejoined.WriteString(seg)
	}
	if rejoined.String() != text {
		t.Error("segments should rejoin to the original text")
	}
	for i, seg := range segments[:3] {
		if !strings.HasSuffix(seg, " ") {
			t.Errorf("segment %d should end at a whitespace boundary", i)
		}
	}
}

func TestPartitioner_SplitHardCutWithoutWhitespace(t *testing.T) {
	p := newTestPartitioner(10)
	text := strings.Repeat("x", 400)

	segments := p.split(text, 4)

	var total int
	for _, seg := range segments {
		total += len(seg)
	}
	if total != 400 {
		t.Errorf("hard-cut segments should cover the input, got %d chars", total)
	}
}

func TestPartitioner_SingleSegment(t *testing.T) {
	p := newTestPartitioner(10)
	segments := p.split("short", 1)

	if len(segments) != 1 || segments[0] != "short" {
		t.Errorf("single-segment split should return the input, got %v", segments)
	}
}
