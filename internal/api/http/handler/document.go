package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

// ContextService makes an uploaded document the conversation context.
type ContextService interface {
	SetContext(ctx context.Context, ws *model.Workspace, upload model.Upload) model.Extraction
}

// Document handles document uploads.
type Document struct {
	contextService ContextService
	resolver       workspaceResolver
	maxUpload      int64
	logger         *logger.Logger
}

// NewDocument creates a Document handler accepting files up to maxUploadMB.
func NewDocument(
	contextService ContextService,
	workspaces model.WorkspaceStore,
	contextManager model.ContextManager,
	maxUploadMB int64,
	logger *logger.Logger,
) *Document {
	return &Document{
		contextService: contextService,
		resolver:       workspaceResolver{workspaces: workspaces, contextManager: contextManager},
		maxUpload:      maxUploadMB << 20,
		logger:         logger,
	}
}

type uploadResponse struct {
	File    string       `json:"file"`
	Format  model.Format `json:"format"`
	Chars   int          `json:"chars"`
	Warning string       `json:"warning,omitempty"`
}

// Upload reads the multipart "file" field. A document that could only be
// partly read is still accepted and reported with a warning.
func (h *Document) Upload(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		Error(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Document handler: failed to read upload",
			"file", header.Filename,
			"error", err.Error())
		Error(w, http.StatusBadRequest, "failed to read file")
		return
	}

	result := h.contextService.SetContext(r.Context(), ws, model.Upload{Name: header.Filename, Data: data})

	resp := uploadResponse{
		File:   header.Filename,
		Format: result.Format,
		Chars:  len([]rune(result.Text)),
	}
	switch {
	case result.Err != nil && result.Text == "":
		handleError(w, result.Err)
		return
	case result.Err != nil:
		resp.Warning = result.Err.Error()
	case result.Format == model.FormatUnknown:
		resp.Warning = model.ErrUnsupportedFormat.Error()
	}

	JSON(w, http.StatusOK, resp)
}
