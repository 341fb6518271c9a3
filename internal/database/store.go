package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/database/models"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/wordcloud"
)

// CorpusStore implements wordcloud.CorpusStore on the questions table. The
// predicate is translated to native SQL conditions that match the reference
// semantics of wordcloud.Predicate.Matches.
type CorpusStore struct {
	db *gorm.DB
}

// NewCorpusStore creates a corpus store over the given database
func NewCorpusStore(db *Database) *CorpusStore {
	return &CorpusStore{db: db.DB()}
}

// Exists reports whether a non-deleted dataset with this id exists
func (s *CorpusStore) Exists(ctx context.Context, datasetID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Dataset{}).
		Where("id = ? AND deleted_at IS NULL", datasetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking dataset existence: %w", err)
	}
	return count > 0, nil
}

// Count returns the number of question rows matching the predicate
func (s *CorpusStore) Count(ctx context.Context, datasetID uuid.UUID, pred wordcloud.Predicate) (int64, error) {
	var count int64
	err := s.scoped(ctx, datasetID, pred).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting questions: %w", err)
	}
	return count, nil
}

// FetchPage returns matching rows ordered by ask time then id, a stable
// order across pages
func (s *CorpusStore) FetchPage(ctx context.Context, datasetID uuid.UUID, pred wordcloud.Predicate, offset, limit int) ([]wordcloud.Row, error) {
	var questions []models.Question
	err := s.scoped(ctx, datasetID, pred).
		Order("asked_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("fetching questions: %w", err)
	}

	rows := make([]wordcloud.Row, len(questions))
	for i, q := range questions {
		rows[i] = wordcloud.Row{
			QuestionText: q.QuestionText,
			ResponseText: q.ResponseText,
			OrgName:      q.OrgName,
			UserID:       q.UserID,
			Timestamp:    q.AskedAt,
		}
	}
	return rows, nil
}

// scoped builds the conjunctive query for one dataset and predicate
func (s *CorpusStore) scoped(ctx context.Context, datasetID uuid.UUID, pred wordcloud.Predicate) *gorm.DB {
	q := s.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("dataset_id = ?", datasetID)

	if len(pred.OrgNames) > 0 {
		q = q.Where("LOWER(org_name) IN ?", lowerAll(pred.OrgNames))
	}
	if len(pred.UserIDs) > 0 {
		q = q.Where("LOWER(user_id) IN ?", lowerAll(pred.UserIDs))
	}
	if len(pred.TenantNames) > 0 {
		// tenant names match against the row org name, same as the
		// reference predicate
		q = q.Where("LOWER(org_name) IN ?", lowerAll(pred.TenantNames))
	}
	if dr := pred.DateRange; dr != nil {
		if dr.Exact != nil {
			day := dr.Exact.Truncate(24 * time.Hour)
			q = q.Where("asked_at >= ? AND asked_at < ?", day, day.Add(24*time.Hour))
		} else {
			if dr.Start != nil {
				q = q.Where("asked_at >= ?", *dr.Start)
			}
			if dr.End != nil {
				q = q.Where("asked_at <= ?", *dr.End)
			}
		}
	}
	return q
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
