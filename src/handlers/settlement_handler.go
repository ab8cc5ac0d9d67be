// backend/src/handlers/settlement_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/username/tourdesk/backend/src/config"
	"github.com/username/tourdesk/backend/src/logger"
	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/security/validation"
	"github.com/username/tourdesk/backend/src/services"
	"github.com/username/tourdesk/backend/src/utils"
)

type SettlementHandler struct {
	settlementService services.SettlementService
}

func NewSettlementHandler(service services.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		settlementService: service,
	}
}

// HandleUpload ingests one platform export file for one platform/period and
// returns the parse errors, match results, and summary of the draft batch.
func (h *SettlementHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("failed to process upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	platform := models.PlatformKey(r.FormValue("platform"))
	if !platform.Valid() {
		ctxLogger.Warn("Upload request with unknown platform", "platform", platform)
		utils.SendJSONError(w, fmt.Sprintf("unknown platform %q", platform), http.StatusBadRequest)
		return
	}

	periodStart, err := time.Parse(time.DateOnly, r.FormValue("period_start"))
	if err != nil {
		utils.SendJSONError(w, "period_start is required in YYYY-MM-DD form", http.StatusBadRequest)
		return
	}
	periodEnd, err := time.Parse(time.DateOnly, r.FormValue("period_end"))
	if err != nil {
		utils.SendJSONError(w, "period_end is required in YYYY-MM-DD form", http.StatusBadRequest)
		return
	}
	if periodEnd.Before(periodStart) {
		utils.SendJSONError(w, "period_end must not precede period_start", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("file too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := validation.ValidateFileContentByMagicBytes(file); err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctxLogger.Info("Processing settlement upload", "platform", platform, "filename", fileHeader.Filename)

	result, err := h.settlementService.ProcessUpload(r.Context(), file, platform, periodStart, periodEnd, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		h.writeProcessError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		ctxLogger.Error("Error encoding JSON response for upload result", "error", err)
	}
}

func (h *SettlementHandler) writeProcessError(w http.ResponseWriter, r *http.Request, err error) {
	ctxLogger := logger.FromContext(r.Context())
	switch {
	case errors.Is(err, models.ErrUnsupportedFormat):
		ctxLogger.Warn("Upload rejected: unsupported format", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrReferenceFetch):
		// Retryable as-is: the operator can re-submit the same file.
		ctxLogger.Error("Upload failed: reference data unavailable", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, services.ErrParsingFailed):
		ctxLogger.Warn("Upload rejected: parse failure", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		ctxLogger.Error("Upload processing failed", "error", err)
		utils.SendJSONError(w, "settlement processing failed", http.StatusInternalServerError)
	}
}

// HandleListBatches returns batch headers, newest first.
func (h *SettlementHandler) HandleListBatches(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	batches, err := h.settlementService.ListBatches(r.Context(), limit)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Error listing settlement batches", "error", err)
		utils.SendJSONError(w, "error listing settlement batches", http.StatusInternalServerError)
		return
	}
	if batches == nil {
		batches = []models.SettlementBatch{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batches)
}

// HandleGetBatch returns one batch with its full match result list,
// with ETag support so the review UI can poll cheaply.
func (h *SettlementHandler) HandleGetBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	batch, err := h.settlementService.GetBatch(r.Context(), batchID)
	if err != nil {
		h.writeBatchError(w, r, err)
		return
	}

	currentETag, etagErr := utils.GenerateETag(batch)
	w.Header().Set("Cache-Control", "no-cache, private")
	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("%q", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batch)
}

// HandleGetSummary returns the aggregate for one batch.
func (h *SettlementHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	summary, err := h.settlementService.GetSummary(r.Context(), batchID)
	if err != nil {
		h.writeBatchError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// HandleConfirmBatch performs the exactly-once confirmation.
func (h *SettlementHandler) HandleConfirmBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	ctxLogger := logger.FromContext(r.Context())

	batch, err := h.settlementService.ConfirmBatch(r.Context(), batchID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBatchNotFound):
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrBatchAlreadyConfirmed):
			ctxLogger.Warn("Confirmation rejected: batch already confirmed", "batchID", batchID)
			utils.SendJSONError(w, err.Error(), http.StatusConflict)
		case errors.Is(err, models.ErrAmbiguousRows):
			ctxLogger.Warn("Confirmation blocked by ambiguous rows", "batchID", batchID, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, models.ErrSettlementConflict):
			ctxLogger.Warn("Confirmation aborted: concurrent settlement conflict", "batchID", batchID, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusConflict)
		default:
			ctxLogger.Error("Batch confirmation failed", "batchID", batchID, "error", err)
			utils.SendJSONError(w, "batch confirmation failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batch)
}

func (h *SettlementHandler) writeBatchError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, models.ErrBatchNotFound) {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	logger.ErrorFromContext(r.Context(), "Error loading settlement batch", "error", err)
	utils.SendJSONError(w, "error loading settlement batch", http.StatusInternalServerError)
}
