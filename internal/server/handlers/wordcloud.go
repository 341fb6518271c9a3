// Package handlers contains the HTTP handlers of the API surface
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/server/response"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/logger"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/wordcloud"
)

// WordCloudHandler serves word cloud generation and cache invalidation
type WordCloudHandler struct {
	engine *wordcloud.Engine
	log    *logger.Logger
}

// NewWordCloudHandler creates the word cloud handler
func NewWordCloudHandler(engine *wordcloud.Engine, log *logger.Logger) *WordCloudHandler {
	return &WordCloudHandler{engine: engine, log: log}
}

// Generate handles POST {prefix}/wordcloud
func (h *WordCloudHandler) Generate(w http.ResponseWriter, r *http.Request) {
	rw := response.NewWriter(w, requestID(r))

	var req wordcloud.WordCloudRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid request body: " + err.Error())
		return
	}

	result, err := h.engine.Generate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, wordcloud.ErrDatasetNotFound),
			errors.Is(err, wordcloud.ErrNoValidDatasets):
			rw.NotFound(err.Error())
		case errors.Is(err, wordcloud.ErrInvalidRequest):
			rw.BadRequest(err.Error())
		default:
			h.log.WithContext(r.Context()).WithField("error", err.Error()).
				Error("word cloud generation failed")
			rw.InternalError("word cloud generation failed")
		}
		return
	}

	rw.Success(result)
}

// InvalidateAll handles DELETE {prefix}/cache
func (h *WordCloudHandler) InvalidateAll(w http.ResponseWriter, r *http.Request) {
	rw := response.NewWriter(w, requestID(r))
	h.engine.InvalidateCache(r.Context(), nil)
	rw.Success(map[string]string{"status": "cache cleared"})
}

// InvalidateDataset handles DELETE {prefix}/cache/{dataset_id}
func (h *WordCloudHandler) InvalidateDataset(w http.ResponseWriter, r *http.Request) {
	rw := response.NewWriter(w, requestID(r))

	datasetID, err := uuid.Parse(r.PathValue("dataset_id"))
	if err != nil {
		rw.BadRequest("invalid dataset id")
		return
	}
	h.engine.InvalidateCache(r.Context(), &datasetID)
	rw.Success(map[string]string{"status": "cache cleared", "dataset_id": datasetID.String()})
}

func requestID(r *http.Request) string {
	if id, ok := r.Context().Value(logger.RequestIDKey).(string); ok {
		return id
	}
	return ""
}
