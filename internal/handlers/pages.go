package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/models"
	"github.com/devhardik21/RootStudy/internal/services"
)

// PreviewImageField is the reserved multipart field carrying the page
// preview; files under every other field are treated as attachments.
const PreviewImageField = "pageImage"

// PagePublisher runs the publication workflow.
type PagePublisher interface {
	Publish(ctx context.Context, in services.PublishInput) (models.Page, error)
}

type PageHandler struct {
	publisher PagePublisher
}

func NewPageHandler(publisher PagePublisher) *PageHandler {
	return &PageHandler{publisher: publisher}
}

// Create handles POST /api/create-page. Uploaded files are spooled to a
// per-request temp directory that is removed on every exit path.
func (h *PageHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, apperr.BadRequest(fmt.Sprintf("could not parse multipart form: %v", err)))
		return
	}

	tempDir, err := os.MkdirTemp("", "create-page-*")
	if err != nil {
		respondError(c, apperr.Internal("failed to create temp dir", err))
		return
	}
	defer os.RemoveAll(tempDir)

	in := services.PublishInput{
		Name:            c.PostForm("pageName"),
		CanvasData:      c.PostForm("canvasData"),
		Transcription:   c.PostForm("transcription"),
		TargetGroupsRaw: c.PostForm("sentGroups"),
	}
	if in.Name == "" {
		in.Name = "Untitled Page"
	}

	seq := 0
	save := func(field string, fh *multipart.FileHeader) (services.UploadedFile, error) {
		seq++
		dst := filepath.Join(tempDir, fmt.Sprintf("%03d-%s", seq, filepath.Base(fh.Filename)))
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			return services.UploadedFile{}, fmt.Errorf("failed to save %s: %w", fh.Filename, err)
		}
		return services.UploadedFile{
			FieldName:   field,
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			LocalPath:   dst,
		}, nil
	}

	if previews := form.File[PreviewImageField]; len(previews) > 0 {
		f, err := save(PreviewImageField, previews[0])
		if err != nil {
			respondError(c, apperr.Internal("failed to spool preview image", err))
			return
		}
		in.PreviewImage = &f
	}

	// Walk attachment fields deterministically; slice order within a field is
	// the client's submission order.
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		if field != PreviewImageField {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, fh := range form.File[field] {
			f, err := save(field, fh)
			if err != nil {
				respondError(c, apperr.Internal("failed to spool attachment", err))
				return
			}
			in.AttachmentFiles = append(in.AttachmentFiles, f)
		}
	}

	page, err := h.publisher.Publish(c.Request.Context(), in)
	if err != nil {
		slog.Error("Publish failed.", "pageName", in.Name, "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatePageResponse{
		Message: "Page created successfully",
		Page:    page,
	})
}
