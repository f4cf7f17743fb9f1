// Package http exposes the roll orchestrator over a JSON HTTP API
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/dice"
)

// HandlerConfig holds dependencies for the HTTP API
type HandlerConfig struct {
	RollService dice.Service
	// Metrics serves /metrics when set
	Metrics http.Handler
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.RollService == nil {
		vb.RequiredField("RollService")
	}
	return vb.Build()
}

// Server serves the viewer endpoints
type Server struct {
	rollService dice.Service
}

// RollRequest is the body of POST /v1/viewers/{viewer}/rolls. Each field
// may be a JSON string or number.
type RollRequest struct {
	Sides    json.RawMessage `json:"sides"`
	NumDice  json.RawMessage `json:"num_dice"`
	NumRolls json.RawMessage `json:"num_rolls"`
}

// ClearResponse is returned by DELETE /v1/viewers/{viewer}/display
type ClearResponse struct {
	Cleared bool `json:"cleared"`
}

// BinResponse is returned by GET /v1/viewers/{viewer}/histogram/{total}
type BinResponse struct {
	Total    int    `json:"total"`
	Count    int    `json:"count"`
	NumRolls int    `json:"num_rolls"`
	Tooltip  string `json:"tooltip"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// NewHandler builds the router
func NewHandler(cfg *HandlerConfig) (http.Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Server{rollService: cfg.RollService}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/v1/viewers/{viewer}", func(r chi.Router) {
		r.Post("/rolls", s.Roll)
		r.Get("/display", s.GetDisplay)
		r.Delete("/display", s.ClearDisplay)
		r.Get("/histogram/{total}", s.InspectBin)
	})

	return r, nil
}

// Roll handles POST /v1/viewers/{viewer}/rolls
func (s *Server) Roll(w http.ResponseWriter, r *http.Request) {
	var body RollRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := s.rollService.Roll(r.Context(), &dice.RollInput{
		ViewerID: chi.URLParam(r, "viewer"),
		Sides:    rawField(body.Sides),
		NumDice:  rawField(body.NumDice),
		NumRolls: rawField(body.NumRolls),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Display)
}

// GetDisplay handles GET /v1/viewers/{viewer}/display
func (s *Server) GetDisplay(w http.ResponseWriter, r *http.Request) {
	out, err := s.rollService.GetDisplay(r.Context(), &dice.GetDisplayInput{
		ViewerID: chi.URLParam(r, "viewer"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Display)
}

// ClearDisplay handles DELETE /v1/viewers/{viewer}/display
func (s *Server) ClearDisplay(w http.ResponseWriter, r *http.Request) {
	out, err := s.rollService.ClearDisplay(r.Context(), &dice.ClearDisplayInput{
		ViewerID: chi.URLParam(r, "viewer"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ClearResponse{Cleared: out.Cleared})
}

// InspectBin handles GET /v1/viewers/{viewer}/histogram/{total}
func (s *Server) InspectBin(w http.ResponseWriter, r *http.Request) {
	total, err := strconv.Atoi(chi.URLParam(r, "total"))
	if err != nil {
		writeError(w, errors.InvalidArgument("total must be an integer"))
		return
	}

	out, err := s.rollService.InspectBin(r.Context(), &dice.InspectBinInput{
		ViewerID: chi.URLParam(r, "viewer"),
		Total:    total,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, binResponse(out.Bin, out.NumRolls, out.Tooltip))
}

func binResponse(bin rolls.Bin, numRolls int, tooltip string) BinResponse {
	return BinResponse{
		Total:    bin.Total,
		Count:    bin.Count,
		NumRolls: numRolls,
		Tooltip:  tooltip,
	}
}

// rawField turns a JSON string or number into the text the orchestrator
// parses. Anything else becomes empty and is rejected there.
func rawField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}

	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	resp := ErrorResponse{
		Code:    code.String(),
		Message: errors.GetMessage(err),
	}
	if fields, ok := errors.GetMeta(err)["fields"].([]string); ok {
		resp.Fields = fields
	}

	if code == errors.CodeInternal {
		slog.Error("Request failed", "error", err)
	}

	writeJSON(w, code.HTTPStatus(), resp)
}

// requestLogger logs one line per request through slog
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
