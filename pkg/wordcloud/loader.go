package wordcloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Predicate is the conjunctive row filter derived from a request. Empty
// fields mean no constraint.
type Predicate struct {
	OrgNames    []string
	UserIDs     []string
	TenantNames []string
	DateRange   *DateRange
}

// NewPredicate derives the row filter from a request
func NewPredicate(req *WordCloudRequest) Predicate {
	return Predicate{
		OrgNames:    req.OrgNames,
		UserIDs:     req.UserIDs,
		TenantNames: req.TenantNames,
		DateRange:   req.DateRange,
	}
}

// Matches reports whether a row satisfies the predicate. Store
// implementations may translate the predicate to native queries instead;
// this reference evaluation defines the semantics they must match.
func (p Predicate) Matches(row Row) bool {
	if len(p.OrgNames) > 0 && !containsFold(p.OrgNames, row.OrgName) {
		return false
	}
	if len(p.UserIDs) > 0 && !containsFold(p.UserIDs, row.UserID) {
		return false
	}
	if len(p.TenantNames) > 0 && !containsFold(p.TenantNames, row.OrgName) {
		return false
	}
	if p.DateRange != nil {
		if exact := p.DateRange.Exact; exact != nil {
			day := exact.Truncate(24 * time.Hour)
			ts := row.Timestamp.Truncate(24 * time.Hour)
			return ts.Equal(day)
		}
		if p.DateRange.Start != nil && row.Timestamp.Before(*p.DateRange.Start) {
			return false
		}
		if p.DateRange.End != nil && row.Timestamp.After(*p.DateRange.End) {
			return false
		}
	}
	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

// CorpusStore is the retrieval abstraction the engine consumes. Implemented
// out of the core by the database layer.
type CorpusStore interface {
	// Exists reports whether the dataset is known
	Exists(ctx context.Context, datasetID uuid.UUID) (bool, error)
	// Count returns the number of rows matching the predicate
	Count(ctx context.Context, datasetID uuid.UUID, pred Predicate) (int64, error)
	// FetchPage returns matching rows in a stable order starting at offset
	FetchPage(ctx context.Context, datasetID uuid.UUID, pred Predicate, offset, limit int) ([]Row, error)
}

// LoaderConfig controls chunked corpus retrieval
type LoaderConfig struct {
	// ChunkThreshold is the matching-row count above which retrieval is
	// paginated
	ChunkThreshold int64 `yaml:"chunk_threshold"`
	// PageSize is the page size for chunked retrieval
	PageSize int `yaml:"page_size"`
}

// DefaultLoaderConfig returns the default loader configuration
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		ChunkThreshold: 10_000,
		PageSize:       5_000,
	}
}

// CorpusLoader translates a request's filter set into a bounded retrieval
// plan: single-shot fetch for small datasets, paginated fetch for large
// ones. The page loop checks ctx between pages so a long chunked load does
// not outlive its caller.
type CorpusLoader struct {
	config *LoaderConfig
	store  CorpusStore
}

// NewCorpusLoader creates a loader over the given store
func NewCorpusLoader(config *LoaderConfig, store CorpusStore) *CorpusLoader {
	if config == nil {
		config = DefaultLoaderConfig()
	}
	return &CorpusLoader{config: config, store: store}
}

// Load fetches the corpus for one dataset under the request's filters.
// Returns ErrDatasetNotFound when the dataset id is unknown. Rows empty in
// every selected column contribute no text but still count toward
// MatchedRows.
func (l *CorpusLoader) Load(ctx context.Context, datasetID uuid.UUID, req *WordCloudRequest) (*Corpus, error) {
	exists, err := l.store.Exists(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("checking dataset %s: %w", datasetID, err)
	}
	if !exists {
		return nil, fmt.Errorf("dataset %s: %w", datasetID, ErrDatasetNotFound)
	}

	pred := NewPredicate(req)
	total, err := l.store.Count(ctx, datasetID, pred)
	if err != nil {
		return nil, fmt.Errorf("counting rows for dataset %s: %w", datasetID, err)
	}

	corpus := &Corpus{DatasetID: datasetID, MatchedRows: total}
	if total == 0 {
		return corpus, nil
	}

	var sb strings.Builder
	tenantSampled := false
	appendRows := func(rows []Row) {
		for _, row := range rows {
			if !tenantSampled {
				corpus.Tenant = TenantInfo{
					OrgName:    row.OrgName,
					UserID:     row.UserID,
					TenantName: row.OrgName,
				}
				tenantSampled = true
			}
			for _, col := range req.SelectedColumns {
				var text string
				switch col {
				case ColumnQuestion:
					text = row.QuestionText
				case ColumnResponse:
					text = row.ResponseText
				}
				if text = strings.TrimSpace(text); text != "" {
					if sb.Len() > 0 {
						sb.WriteByte(' ')
					}
					sb.WriteString(text)
				}
			}
		}
	}

	if total <= l.config.ChunkThreshold {
		rows, err := l.store.FetchPage(ctx, datasetID, pred, 0, int(total))
		if err != nil {
			return nil, fmt.Errorf("fetching rows for dataset %s: %w", datasetID, err)
		}
		appendRows(rows)
	} else {
		for offset := 0; int64(offset) < total; offset += l.config.PageSize {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rows, err := l.store.FetchPage(ctx, datasetID, pred, offset, l.config.PageSize)
			if err != nil {
				return nil, fmt.Errorf("fetching page at %d for dataset %s: %w", offset, datasetID, err)
			}
			if len(rows) == 0 {
				break
			}
			appendRows(rows)
		}
	}

	corpus.Text = sb.String()
	return corpus, nil
}
