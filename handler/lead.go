package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/selvacse6139/SK-Associate/model"
	"github.com/selvacse6139/SK-Associate/pkg/logger"
)

// LeadDispatcher routes a decoded lead to the first working delivery channel.
type LeadDispatcher interface {
	Dispatch(ctx context.Context, lead *model.LeadSubmission) (*model.DeliveryResult, error)
}

type LeadHandler struct {
	dispatcher LeadDispatcher
}

func NewLeadHandler(dispatcher LeadDispatcher) *LeadHandler {
	return &LeadHandler{dispatcher: dispatcher}
}

// Submit handles POST /api/lead. A decode failure aborts the request before
// any provider is attempted; a dispatch failure means every provider was
// skipped or failed.
func (h *LeadHandler) Submit(c *gin.Context) {
	lead, cleanup, err := decodeSubmission(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse form submission: " + err.Error()})
		return
	}
	defer cleanup()

	result, err := h.dispatcher.Dispatch(c.Request.Context(), lead)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No delivery provider configured or all providers failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "via": result})
}

// decodeSubmission turns the multipart body into a LeadSubmission. Every
// scalar field is kept, unknown keys included. An uploaded "document" is
// saved to a temp directory; the returned cleanup removes it and runs on
// every exit path once the handler is done with the lead.
func decodeSubmission(c *gin.Context) (*model.LeadSubmission, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, err
	}

	fields := make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	lead := &model.LeadSubmission{Fields: fields}
	cleanup := func() {}

	if files := form.File["document"]; len(files) > 0 {
		header := files[0]

		dir, err := os.MkdirTemp("", "lead-attachment-")
		if err != nil {
			return nil, nil, err
		}
		path := filepath.Join(dir, filepath.Base(header.Filename))
		if err := c.SaveUploadedFile(header, path); err != nil {
			os.RemoveAll(dir)
			return nil, nil, err
		}

		lead.Attachment = &model.Attachment{
			Filename:    header.Filename,
			Path:        path,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
		}
		ctx := c.Request.Context()
		cleanup = func() {
			if err := os.RemoveAll(dir); err != nil {
				logger.Warn(ctx, "failed to remove attachment temp dir", "dir", dir, "error", err)
			}
		}
	}

	return lead, cleanup, nil
}
