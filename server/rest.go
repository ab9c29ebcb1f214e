package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/hnscope/pkg/domain"
	"github.com/umputun/hnscope/pkg/pager"
)

// pageResponse is one window of a feed or thread
type pageResponse struct {
	Feed      string        `json:"feed"`
	Page      int           `json:"page"`
	PageSize  int           `json:"page_size"`
	Total     int           `json:"total"`
	Exhausted bool          `json:"exhausted"`
	Items     []domain.Item `json:"items"`
}

// feedbackRequest is the body of POST /feedback
type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// feedHandler returns a page of a named feed
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	key, err := domain.ParseFeedKey(r.PathValue("feed"))
	if err != nil || key.IsThread() {
		renderError(w, r, fmt.Errorf("unknown feed %q", r.PathValue("feed")), http.StatusBadRequest)
		return
	}
	s.renderPage(w, r, key)
}

// itemHandler returns a single visible item
func (s *Server) itemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	item, err := s.catalog.FetchItem(r.Context(), id)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch item %d: %v", id, err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	if !item.Visible() {
		renderError(w, r, fmt.Errorf("item %d not found", id), http.StatusNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, item)
}

// commentsHandler returns a page of direct replies to an item
func (s *Server) commentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	s.renderPage(w, r, domain.ThreadKey(id))
}

// renderPage resolves the id list of key and assembles the requested page over it
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, key domain.FeedKey) {
	ctx := r.Context()

	page, err := parsePage(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	ids, err := s.catalog.FetchIDs(ctx, key)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch id list for %s: %v", key, err)
		renderError(w, r, err, errorStatus(err))
		return
	}

	size := s.config.GetPageSize()
	win := pager.WindowAt(page, size)
	items, err := s.assembler.Assemble(ctx, ids, win)
	if err != nil {
		lgr.Printf("[WARN] failed to assemble page %d of %s: %v", page, key, err)
		renderError(w, r, err, errorStatus(err))
		return
	}

	renderJSON(w, r, http.StatusOK, pageResponse{
		Feed:      key.String(),
		Page:      page,
		PageSize:  size,
		Total:     len(ids),
		Exhausted: win.End() >= len(ids),
		Items:     items,
	})
}

// getFeedbackHandler returns the stored feedback record
func (s *Server) getFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.feedback.Load(r.Context())
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	if rec == nil {
		renderError(w, r, errors.New("no feedback saved"), http.StatusNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, rec)
}

// saveFeedbackHandler validates and stores a feedback submission
func (s *Server) saveFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	rec, err := s.feedback.Save(r.Context(), req.Rating, req.Comment)
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusOK, rec)
}

// clearFeedbackHandler removes the stored feedback record
func (s *Server) clearFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.feedback.Clear(r.Context()); err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item ID %q", r.PathValue("id"))
	}
	return id, nil
}

// parsePage returns the zero-based page from the query, 0 if not set
func parsePage(r *http.Request) (int, error) {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		return 0, fmt.Errorf("invalid page %q", pageStr)
	}
	return page, nil
}
