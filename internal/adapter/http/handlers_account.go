package adapthttp

import (
	"net/http"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	acct, err := s.accounts.Me(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	switch r.Method {
	case http.MethodGet:
		goal, err := s.accounts.Goal(ctx, sess)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": goal})

	case http.MethodPut:
		var body struct {
			Goal float64 `json:"goal"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.accounts.SetGoal(ctx, sess, body.Goal); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": body.Goal})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handlePhone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	switch r.Method {
	case http.MethodGet:
		phone, err := s.accounts.Phone(ctx, sess)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"phone": phone})

	case http.MethodPut:
		var body struct {
			Phone string `json:"phone"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.accounts.SetPhone(ctx, sess, body.Phone); err != nil {
			writeServiceError(w, err)
			return
		}
		phone, err := s.accounts.Phone(ctx, sess)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"phone": phone})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}
