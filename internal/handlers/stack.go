package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ragcompare/internal/contextutil"
	"ragcompare/internal/indexer"
	"ragcompare/internal/service"
)

const (
	// maxUploadBytes caps the size of one add-files request.
	maxUploadBytes = 64 << 20
	// multipartMemory is how much of an upload is buffered in memory before
	// spilling to temporary files.
	multipartMemory = 32 << 20
	maxMessageBytes = 1 << 20
)

// StackHandler serves the per-stack API.
type StackHandler struct {
	svc service.StackService
}

// NewStackHandler creates a new StackHandler.
func NewStackHandler(svc service.StackService) *StackHandler {
	return &StackHandler{svc: svc}
}

// ConversationRequest is the body of add-conversation.
type ConversationRequest struct {
	Text string `json:"text"`
}

// StackInfo describes one stack in the stack listing.
type StackInfo struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy,omitempty"`
	Rerank   bool   `json:"rerank"`
	// Query is the query transform: "hyde", "multi_query" or empty.
	Query string `json:"query,omitempty"`
}

func stackParam(r *http.Request) string {
	return chi.URLParam(r, "stack")
}

// ListStacks handles GET /api/stacks.
func (h *StackHandler) ListStacks(w http.ResponseWriter, r *http.Request) {
	stacks := h.svc.Stacks()
	out := make([]StackInfo, len(stacks))
	for i, s := range stacks {
		out[i] = StackInfo{Name: s.Name, Strategy: string(s.Strategy), Rerank: s.Rerank}
		switch {
		case s.HyDE:
			out[i].Query = "hyde"
		case s.MultiQuery:
			out[i].Query = "multi_query"
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, out)
}

// Open handles POST /api/{stack}/new.
func (h *StackHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Open(r.Context(), stackParam(r)); err != nil {
		handleServiceError(r.Context(), w, err, "Failed to open stack")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFiles handles GET /api/{stack}/list-files.
func (h *StackHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.ListFiles(r.Context(), stackParam(r))
	if err != nil {
		handleServiceError(r.Context(), w, err, "Failed to list files")
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(r.Context(), w, http.StatusOK, files)
}

// AddFiles handles POST /api/{stack}/add-files with multipart field "files".
func (h *StackHandler) AddFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(ctx, w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		logger.WarnContext(ctx, "invalid multipart body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File["files"]
	uploads := make([]indexer.Upload, 0, len(headers))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			logger.ErrorContext(ctx, "failed to open uploaded file", "file", fh.Filename, "error", err)
			writeError(ctx, w, http.StatusInternalServerError, "Failed to read upload")
			return
		}
		opened = append(opened, f)
		uploads = append(uploads, indexer.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	results, err := h.svc.AddFiles(ctx, stackParam(r), uploads)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to add files")
		return
	}
	writeJSON(ctx, w, http.StatusOK, results)
}

// ClearFiles handles POST /api/{stack}/clear-files.
func (h *StackHandler) ClearFiles(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearFiles(r.Context(), stackParam(r)); err != nil {
		handleServiceError(r.Context(), w, err, "Failed to clear files")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddConversation handles POST /api/{stack}/add-conversation.
func (h *StackHandler) AddConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ConversationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBytes)).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answers, err := h.svc.AddConversation(ctx, stackParam(r), req.Text)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to answer")
		return
	}
	writeJSON(ctx, w, http.StatusOK, answers)
}

// ClearConversation handles POST /api/{stack}/clear-conversation.
func (h *StackHandler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearConversation(r.Context(), stackParam(r)); err != nil {
		handleServiceError(r.Context(), w, err, "Failed to clear conversation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/{stack}/stats.
func (h *StackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), stackParam(r))
	if err != nil {
		handleServiceError(r.Context(), w, err, "Failed to compute stats")
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, stats)
}
