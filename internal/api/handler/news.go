package handler

import (
	"net/http"

	"github.com/stadiumstories/cricket-gateway/internal/api/respond"
)

// staticNews is the fixed editorial teaser list behind /api/news.
var staticNews = []map[string]interface{}{
	{"id": 1, "title": "I'M WORKING REALLY HARD - SHIVAM DUBE", "date": "3 days ago", "tag": "Interview"},
	{"id": 2, "title": "RCB Women start campaign with a win", "date": "FEB 05 - 2026", "tag": "Match Report"},
}

// GetStaticNews returns the fixed 2-item teaser list. Never fails.
// @Summary Static news teasers
// @Tags news
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /api/news [get]
func (h *Handler) GetStaticNews(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, staticNews)
}

// GetCricketNews returns up to 6 normalized cricket headlines.
// @Summary Cricket news
// @Tags news
// @Produce json
// @Success 200 {array} external.Article
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/cricket-news [get]
func (h *Handler) GetCricketNews(w http.ResponseWriter, r *http.Request) {
	if !h.news.Configured() {
		respond.WriteError(w, http.StatusInternalServerError, "CONFIG_ERROR", "News API Key is missing.")
		return
	}

	articles, err := h.news.CricketNews(r.Context())
	if err != nil {
		h.logger.Error("cricket news fetch failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "UPSTREAM_ERROR", "Failed to fetch news")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, articles)
}
