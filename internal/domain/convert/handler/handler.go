// Package handler exposes the conversion pipeline over HTTP.
package handler

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/service"
	"github.com/FACorreiaa/invoice-reconciler/pkg/storage"
)

const maxUploadBytes = 64 << 20

// Converter runs a batch conversion.
type Converter interface {
	ConvertBatch(ctx context.Context, files []service.InputFile) (*service.BatchResult, error)
}

// ConvertHandler serves the health and conversion endpoints.
type ConvertHandler struct {
	svc    Converter
	store  storage.Storage
	apiKey string
	logger *slog.Logger
}

// NewConvertHandler creates a handler. store may be nil to disable upload
// archiving.
func NewConvertHandler(svc Converter, store storage.Storage, apiKey string, logger *slog.Logger) *ConvertHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConvertHandler{
		svc:    svc,
		store:  store,
		apiKey: strings.TrimSpace(apiKey),
		logger: logger,
	}
}

// Routes returns the handler's route table.
func (h *ConvertHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Health)
	mux.HandleFunc("POST /api/convert", h.Convert)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Health reports service liveness and whether an API key is configured,
// without revealing the key itself.
func (h *ConvertHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"has_api_key":    h.apiKey != "",
		"api_key_length": len(h.apiKey),
	})
}

// Convert accepts one or more PDF uploads under the multipart field "file",
// runs the conversion pipeline and returns the three output tables.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No file uploaded"})
		return
	}

	parts := r.MultipartForm.File["file"]
	if len(parts) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No file uploaded"})
		return
	}

	files := make([]service.InputFile, 0, len(parts))
	for _, part := range parts {
		if !strings.HasSuffix(strings.ToLower(part.Filename), ".pdf") {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Only PDF files are supported"})
			return
		}

		f, err := part.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No file uploaded"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No file uploaded"})
			return
		}
		files = append(files, service.InputFile{Name: part.Filename, Data: data})
	}

	res, err := h.svc.ConvertBatch(r.Context(), files)
	if err != nil {
		h.logger.Error("conversion failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Conversion failed"})
		return
	}

	h.archive(r.Context(), res, files)
	writeJSON(w, http.StatusOK, service.BuildOutput(res))
}

// authorize checks the X-API-KEY header. Responses mirror what callers
// integrating spreadsheet scripts need to debug key mismatches without
// exposing the key.
func (h *ConvertHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	if h.apiKey == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Server API_KEY not configured"})
		return false
	}

	_, present := r.Header[http.CanonicalHeaderKey("X-API-KEY")]
	sent := strings.TrimSpace(r.Header.Get("X-API-KEY"))
	if subtle.ConstantTimeCompare([]byte(sent), []byte(h.apiKey)) != 1 {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": "Unauthorized",
			"debug": map[string]any{
				"header_present":    present,
				"sent_key_length":   len(sent),
				"server_key_length": len(h.apiKey),
			},
		})
		return false
	}
	return true
}

// archive stores the uploaded documents under the batch ID. Failures are
// logged but never affect the response; the conversion already happened.
func (h *ConvertHandler) archive(ctx context.Context, res *service.BatchResult, files []service.InputFile) {
	if h.store == nil {
		return
	}
	for _, f := range files {
		if _, err := h.store.Store(ctx, res.BatchID, f.Name, bytes.NewReader(f.Data)); err != nil {
			h.logger.Warn("archiving upload failed",
				slog.String("file", f.Name), slog.Any("error", err))
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", slog.Any("error", err))
	}
}
