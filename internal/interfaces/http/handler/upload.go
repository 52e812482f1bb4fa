package handler

import (
	"fmt"
	"io"
	"path"

	financeapp "github.com/pharmalink/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxDocumentSize caps uploaded payment documents at 10MB
const maxDocumentSize = 10 << 20

// UploadHandler handles payment document uploads
type UploadHandler struct {
	BaseHandler
	storage financeapp.DocumentStorage
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(storage financeapp.DocumentStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// UploadDocumentResponse carries the stored document's location
type UploadDocumentResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Key      string `json:"key"`
}

// UploadDocument stores a supporting document and returns its URL. The
// returned URL is what payment creation expects in its documents list.
func (h *UploadHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file")
		return
	}
	if fileHeader.Size > maxDocumentSize {
		h.BadRequest(c, "File exceeds the 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		h.InternalError(c, "Could not read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("payments/%s%s", uuid.NewString(), path.Ext(fileHeader.Filename))
	url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, UploadDocumentResponse{
		URL:      url,
		FileName: fileHeader.Filename,
		Key:      key,
	})
}
