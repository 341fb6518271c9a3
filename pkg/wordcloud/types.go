// Package wordcloud implements the word cloud generation and caching engine
// for the text analysis platform. It turns a (dataset-set, analysis-mode,
// filter-set) request into a ranked, tagged term list suitable for
// visualization, with memoization of assembled results.
package wordcloud

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mode represents a named term-extraction strategy
type Mode string

const (
	ModeAll      Mode = "all"
	ModeVerbs    Mode = "verbs"
	ModeEmotions Mode = "emotions"
	ModeThemes   Mode = "themes"
	ModeTopics   Mode = "topics"
	ModeEntities Mode = "entities"
)

// Tag represents the sentiment or category assigned to an extracted word
type Tag string

const (
	TagPositive Tag = "positive"
	TagNegative Tag = "negative"
	TagNeutral  Tag = "neutral"
	TagAction   Tag = "action"
	TagEntity   Tag = "entity"
	TagTheme    Tag = "theme"
	TagTopic    Tag = "topic"
)

// Text column selectors for DateRange-filtered corpora. Column 1 is the
// question text, column 2 the response text.
const (
	ColumnQuestion = 1
	ColumnResponse = 2
)

// Sentinel errors for the engine error taxonomy
var (
	// ErrDatasetNotFound indicates the requested dataset id does not exist
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrNoValidDatasets indicates every dataset id in a multi-dataset
	// request was missing or empty
	ErrNoValidDatasets = errors.New("no valid datasets in request")
	// ErrInvalidRequest indicates the request failed validation
	ErrInvalidRequest = errors.New("invalid word cloud request")
)

// DateRange restricts the corpus to rows within a time window. When Exact is
// set it takes precedence over Start/End and matches a single calendar day.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
	Exact *time.Time `json:"exact,omitempty"`
}

// WordCloudRequest describes a single word cloud generation request. It is
// treated as immutable once constructed; the cache key is derived from it
// verbatim.
type WordCloudRequest struct {
	DatasetIDs      []uuid.UUID `json:"dataset_ids"`
	Mode            Mode        `json:"mode"`
	SelectedColumns []int       `json:"selected_columns,omitempty"`
	ExcludeWords    []string    `json:"exclude_words,omitempty"`
	IncludeWords    []string    `json:"include_words,omitempty"`
	MinWordLength   int         `json:"min_word_length,omitempty"`
	MaxWords        int         `json:"max_words,omitempty"`
	OrgNames        []string    `json:"org_names,omitempty"`
	UserIDs         []string    `json:"user_ids,omitempty"`
	TenantNames     []string    `json:"tenant_names,omitempty"`
	DateRange       *DateRange  `json:"date_range,omitempty"`
	Sentiments      []Tag       `json:"sentiments,omitempty"`
}

// Normalize fills defaulted fields in place and validates the request.
// MinWordLength defaults to 3, MaxWords to 50, SelectedColumns to both text
// columns, Mode to "all".
func (r *WordCloudRequest) Normalize() error {
	if len(r.DatasetIDs) == 0 {
		return fmt.Errorf("%w: at least one dataset id is required", ErrInvalidRequest)
	}
	if r.Mode == "" {
		r.Mode = ModeAll
	}
	if r.MinWordLength < 1 {
		r.MinWordLength = 3
	}
	if r.MaxWords < 1 {
		r.MaxWords = 50
	}
	if len(r.SelectedColumns) == 0 {
		r.SelectedColumns = []int{ColumnQuestion, ColumnResponse}
	}
	if r.DateRange != nil &&
		r.DateRange.Start == nil && r.DateRange.End == nil && r.DateRange.Exact == nil {
		// an empty range means no constraint; drop it so both spellings
		// share one cache key
		r.DateRange = nil
	}
	for _, col := range r.SelectedColumns {
		if col != ColumnQuestion && col != ColumnResponse {
			return fmt.Errorf("%w: unknown text column %d", ErrInvalidRequest, col)
		}
	}
	return nil
}

// WordRecord is a single ranked term in a word cloud result
type WordRecord struct {
	Word                string  `json:"word"`
	Frequency           int     `json:"frequency"`
	NormalizedFrequency float64 `json:"normalized_frequency"`
	Sentiment           Tag     `json:"sentiment"`
	Mode                Mode    `json:"mode"`
}

// WordCloudResult is the assembled output for one request. Payloads stored
// in the cache are deep-copied on the way in and out so callers can never
// mutate a cached result.
type WordCloudResult struct {
	DatasetIDs       []uuid.UUID   `json:"dataset_ids"`
	Mode             Mode          `json:"mode"`
	Words            []WordRecord  `json:"words"`
	WordCount        int           `json:"word_count"`
	TotalQuestions   int64         `json:"total_questions_considered"`
	FilteredRowCount int64         `json:"filtered_row_count"`
	SkippedDatasets  []uuid.UUID   `json:"skipped_datasets,omitempty"`
	CacheHit         bool          `json:"cache_hit"`
	GenerationTime   time.Duration `json:"generation_time"`
	Message          string        `json:"message,omitempty"`
}

// Clone returns a deep copy of the result
func (r *WordCloudResult) Clone() *WordCloudResult {
	if r == nil {
		return nil
	}
	out := *r
	out.DatasetIDs = append([]uuid.UUID(nil), r.DatasetIDs...)
	out.Words = append([]WordRecord(nil), r.Words...)
	out.SkippedDatasets = append([]uuid.UUID(nil), r.SkippedDatasets...)
	return &out
}

// TenantInfo carries the organization/user/tenant identifying strings of a
// dataset, sampled from its first matching row. Used only to derive the
// self-referential noise blacklist.
type TenantInfo struct {
	OrgName    string `json:"org_name"`
	UserID     string `json:"user_id"`
	TenantName string `json:"tenant_name"`
}

// Corpus is the transient text extracted for one dataset and request. It is
// built per request (or per page) and discarded after classification.
type Corpus struct {
	DatasetID   uuid.UUID
	Text        string
	Tenant      TenantInfo
	MatchedRows int64
}

// Row is one question/response record as exposed by the corpus store
type Row struct {
	QuestionText string
	ResponseText string
	OrgName      string
	UserID       string
	Timestamp    time.Time
}
