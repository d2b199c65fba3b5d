package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/autofeyn/pkg/buildinfo"
	"github.com/matzehuels/autofeyn/pkg/errors"
	"github.com/matzehuels/autofeyn/pkg/io"
	"github.com/matzehuels/autofeyn/pkg/particle"
)

// pageRequest is the POST /api/diagrams body.
type pageRequest struct {
	UID  string      `json:"uid"`
	Data *io.Request `json:"data,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// handleDiagramsQuery takes the session id and request the way browser
// clients send them: as query parameters, with the request JSON-encoded in
// "data". "index" is accepted for compatibility; the session tracks the page.
func (s *Server) handleDiagramsQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var req *io.Request
	if data := q.Get("data"); data != "" {
		parsed, err := io.ParseRequest([]byte(data), io.FormatJSON)
		if err != nil {
			s.writeError(w, err)
			return
		}
		req = &parsed
	}
	s.servePage(w, r, q.Get("uid"), req)
}

func (s *Server) handleDiagramsBody(w http.ResponseWriter, r *http.Request) {
	var body pageRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	uid := body.UID
	if uid == "" {
		uid = r.URL.Query().Get("uid")
	}
	s.servePage(w, r, uid, body.Data)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, uid string, req *io.Request) {
	page, err := s.runner.Page(r.Context(), uid, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	req, err := io.ReadRequest(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes), io.FormatJSON)
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := s.runner.Count(r.Context(), req, r.URL.Query().Get("refresh") == "true")
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Reset(r.Context(), chi.URLParam(r, "uid")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type particleInfo struct {
	Name          string `json:"name"`
	Group         string `json:"group"`
	Spin          string `json:"spin"`
	Antiparticle  string `json:"antiparticle"`
	SelfConjugate bool   `json:"self_conjugate"`
}

func (s *Server) handleParticles(w http.ResponseWriter, r *http.Request) {
	kinds := particle.All()
	out := make([]particleInfo, len(kinds))
	for i, k := range kinds {
		out[i] = particleInfo{
			Name:          k.String(),
			Group:         k.Group().String(),
			Spin:          k.Spin().String(),
			Antiparticle:  particle.Anti(k).String(),
			SelfConjugate: particle.IsSelfConjugate(k),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeSessionExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(code, message string) map[string]any {
	return map[string]any{"error": map[string]string{"code": code, "message": message}}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
		msg = "internal error"
	}
	writeJSON(w, status, errorBody(code, msg))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
