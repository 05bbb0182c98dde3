package adapthttp

import (
	"net/http"

	"weighttrack/internal/domain"
)

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	switch r.Method {
	case http.MethodGet:
		key := domain.ParseSortKey(r.URL.Query().Get("sort"))
		list, err := s.weight.ListEntries(ctx, sess, key)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items":       list.Items,
			"sort":        list.Sort.String(),
			"goalMissing": list.GoalMissing,
		})

	case http.MethodPost:
		var body struct {
			Date   string  `json:"date"`
			Weight float64 `json:"weight"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		res, err := s.weight.AddEntry(ctx, sess, body.Date, body.Weight)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleEntriesDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var body struct {
		IDs []int64 `json:"ids"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	n, err := s.weight.DeleteEntries(r.Context(), sessionFrom(r.Context()), body.IDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": n})
}

func (s *Server) handleEntriesLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	entry, err := s.weight.MostRecent(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}
