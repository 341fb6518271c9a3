package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/server/response"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/logger"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/wordcloud"
)

type stubStore struct {
	rows map[uuid.UUID][]wordcloud.Row
}

func (s *stubStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.rows[id]
	return ok, nil
}

func (s *stubStore) Count(_ context.Context, id uuid.UUID, pred wordcloud.Predicate) (int64, error) {
	var n int64
	for _, row := range s.rows[id] {
		if pred.Matches(row) {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) FetchPage(_ context.Context, id uuid.UUID, pred wordcloud.Predicate, offset, limit int) ([]wordcloud.Row, error) {
	var out []wordcloud.Row
	for _, row := range s.rows[id] {
		if pred.Matches(row) {
			out = append(out, row)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	if end := offset + limit; end < len(out) {
		out = out[:end]
	}
	return out[offset:], nil
}

func newTestHandler(t *testing.T) (*WordCloudHandler, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	store := &stubStore{rows: map[uuid.UUID][]wordcloud.Row{
		id: {{QuestionText: "contract dispute settled quickly", Timestamp: time.Now()}},
	}}
	log := logger.NewDefaultLogger("test")
	return NewWordCloudHandler(wordcloud.NewEngine(store, nil, nil, nil, log), log), id
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()
	var resp response.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func TestGenerate_OK(t *testing.T) {
	handler, id := newTestHandler(t)

	body := fmt.Sprintf(`{"dataset_ids": [%q], "mode": "all"}`, id)
	rec := httptest.NewRecorder()
	handler.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wordcloud", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("expected success envelope")
	}
	data, _ := json.Marshal(resp.Data)
	if !strings.Contains(string(data), "contract") {
		t.Errorf("result missing expected word: %s", data)
	}
}

func TestGenerate_UnknownDataset(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := fmt.Sprintf(`{"dataset_ids": [%q]}`, uuid.New())
	rec := httptest.NewRecorder()
	handler.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wordcloud", strings.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "not_found" {
		t.Errorf("unexpected error envelope: %+v", resp.Error)
	}
}

func TestGenerate_MalformedBody(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wordcloud", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGenerate_EmptyDatasetList(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wordcloud", strings.NewReader(`{"dataset_ids": []}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInvalidateDataset(t *testing.T) {
	handler, id := newTestHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cache/"+id.String(), nil)
	req.SetPathValue("dataset_id", id.String())
	rec := httptest.NewRecorder()
	handler.InvalidateDataset(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestInvalidateDataset_BadID(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cache/not-a-uuid", nil)
	req.SetPathValue("dataset_id", "not-a-uuid")
	rec := httptest.NewRecorder()
	handler.InvalidateDataset(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInvalidateAll(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.InvalidateAll(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/cache", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
