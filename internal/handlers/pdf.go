package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/models"
	"github.com/devhardik21/RootStudy/internal/services"
)

// PdfServicer is the PDF metadata service surface the routes need.
type PdfServicer interface {
	UploadPdf(ctx context.Context, up services.PdfUpload, linkedPageID string) (models.PdfDocument, error)
	RenderPage(ctx context.Context, pdfID string, pageNumber int, up services.PdfUpload) (models.RenderedPage, error)
	GetPdfDocument(ctx context.Context, pdfID string) (models.PdfDocument, error)
}

type PdfHandler struct {
	svc PdfServicer
}

func NewPdfHandler(svc PdfServicer) *PdfHandler {
	return &PdfHandler{svc: svc}
}

// spoolPdf saves the uploaded "pdf" form file into a fresh temp directory.
// The caller removes the directory on every exit path.
func (h *PdfHandler) spoolPdf(c *gin.Context, fh *multipart.FileHeader) (services.PdfUpload, string, error) {
	tempDir, err := os.MkdirTemp("", "pdf-upload-*")
	if err != nil {
		return services.PdfUpload{}, "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	localPath := filepath.Join(tempDir, "source.pdf")
	if err := c.SaveUploadedFile(fh, localPath); err != nil {
		os.RemoveAll(tempDir)
		return services.PdfUpload{}, "", fmt.Errorf("failed to save uploaded PDF: %w", err)
	}
	return services.PdfUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		LocalPath:   localPath,
	}, tempDir, nil
}

// Upload handles POST /api/pdf/upload.
func (h *PdfHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("pdf")
	if err != nil {
		respondPdfError(c, apperr.BadRequest("no PDF file uploaded"))
		return
	}

	up, tempDir, err := h.spoolPdf(c, fh)
	if err != nil {
		respondPdfError(c, apperr.Internal("error processing PDF", err))
		return
	}
	defer os.RemoveAll(tempDir)

	doc, err := h.svc.UploadPdf(c.Request.Context(), up, c.PostForm("projectId"))
	if err != nil {
		slog.Error("PDF upload rejected.", "fileName", fh.Filename, "error", err)
		respondPdfError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PdfEnvelope{
		Success: true,
		Message: "PDF uploaded successfully",
		Data: models.PdfUploadData{
			PdfID:      doc.ID,
			FileName:   doc.FileName,
			TotalPages: doc.TotalPages,
			FileSize:   doc.FileSizeBytes,
		},
	})
}

// RenderPage handles POST /api/pdf/render-page. The client re-uploads the
// original PDF; the requested page is extracted and cached. The optional
// quality field is accepted and ignored, rendering scale is a client concern.
func (h *PdfHandler) RenderPage(c *gin.Context) {
	pdfID := c.PostForm("pdfId")
	pageNumber, convErr := strconv.Atoi(c.PostForm("pageNumber"))
	if pdfID == "" || convErr != nil {
		respondPdfError(c, apperr.BadRequest("PDF ID and page number are required"))
		return
	}

	fh, err := c.FormFile("pdf")
	if err != nil {
		respondPdfError(c, apperr.BadRequest("no PDF file uploaded"))
		return
	}

	up, tempDir, err := h.spoolPdf(c, fh)
	if err != nil {
		respondPdfError(c, apperr.Internal("error rendering PDF page", err))
		return
	}
	defer os.RemoveAll(tempDir)

	entry, err := h.svc.RenderPage(c.Request.Context(), pdfID, pageNumber, up)
	if err != nil {
		slog.Error("Page render failed.", "pdfId", pdfID, "pageNumber", pageNumber, "error", err)
		respondPdfError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PdfEnvelope{
		Success: true,
		Message: "Page rendered successfully",
		Data:    entry,
	})
}

// Get handles GET /api/pdf/:pdfId.
func (h *PdfHandler) Get(c *gin.Context) {
	doc, err := h.svc.GetPdfDocument(c.Request.Context(), c.Param("pdfId"))
	if err != nil {
		respondPdfError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PdfEnvelope{
		Success: true,
		Data:    doc,
	})
}
