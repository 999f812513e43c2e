package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/assets"
	"github.com/devhardik21/RootStudy/internal/models"
)

// PdfDocStore is the slice of the persistence layer the PDF service needs.
type PdfDocStore interface {
	CreatePdfDocument(ctx context.Context, d models.PdfDocument) (models.PdfDocument, error)
	GetPdfDocument(ctx context.Context, id string) (models.PdfDocument, error)
	AppendRenderedPage(ctx context.Context, id string, entry models.RenderedPage) (models.RenderedPage, bool, error)
}

// PdfEngine wraps the PDF operations the service performs on local files.
type PdfEngine interface {
	PageCount(path string) (int, error)
	// ExtractPage writes the single page pageNumber of src as a standalone
	// one-page document at dst.
	ExtractPage(src, dst string, pageNumber int) error
}

type pdfcpuEngine struct{}

// NewPdfcpuEngine returns the production engine backed by pdfcpu.
func NewPdfcpuEngine() PdfEngine { return pdfcpuEngine{} }

func (pdfcpuEngine) PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

func (pdfcpuEngine) ExtractPage(src, dst string, pageNumber int) error {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return api.TrimFile(src, dst, []string{strconv.Itoa(pageNumber)}, cfg)
}

// PdfUpload describes an uploaded file already spooled to local disk. The
// caller owns the temp file and removes it on every exit path.
type PdfUpload struct {
	FileName    string
	ContentType string
	Size        int64
	LocalPath   string
}

// PdfService validates and records uploaded PDFs and renders individual pages
// to the asset store on demand.
type PdfService struct {
	store       PdfDocStore
	assets      assets.Store
	engine      PdfEngine
	maxFileSize int64
	maxPages    int
}

func NewPdfService(store PdfDocStore, assetStore assets.Store, engine PdfEngine, maxFileSize int64, maxPages int) *PdfService {
	return &PdfService{
		store:       store,
		assets:      assetStore,
		engine:      engine,
		maxFileSize: maxFileSize,
		maxPages:    maxPages,
	}
}

// UploadPdf validates an uploaded PDF and persists its metadata. The binary
// itself is not retained; only per-page renders are stored later.
func (s *PdfService) UploadPdf(ctx context.Context, up PdfUpload, linkedPageID string) (models.PdfDocument, error) {
	if up.ContentType != "application/pdf" {
		return models.PdfDocument{}, apperr.UnsupportedType("only PDF files are allowed")
	}
	if up.Size > s.maxFileSize {
		return models.PdfDocument{}, apperr.TooLarge(fmt.Sprintf("PDF file size must be less than %dMB", s.maxFileSize>>20))
	}

	totalPages, err := s.engine.PageCount(up.LocalPath)
	if err != nil {
		return models.PdfDocument{}, apperr.BadRequest(fmt.Sprintf("could not read PDF: %v", err))
	}
	if totalPages > s.maxPages {
		return models.PdfDocument{}, apperr.TooManyPages(fmt.Sprintf("PDF must have at most %d pages", s.maxPages))
	}

	doc := models.PdfDocument{
		FileName:      up.FileName,
		FileSizeBytes: up.Size,
		TotalPages:    totalPages,
		LinkedPageID:  linkedPageID,
		RenderedPages: []models.RenderedPage{},
	}
	created, err := s.store.CreatePdfDocument(ctx, doc)
	if err != nil {
		return models.PdfDocument{}, err
	}
	slog.Info("PDF metadata recorded.", "pdfId", created.ID, "fileName", created.FileName, "totalPages", created.TotalPages)
	return created, nil
}

// RenderPage extracts a single page from the re-uploaded source PDF, stores it
// and records the render. Re-requesting an already-rendered page returns the
// cached entry without another storage write.
func (s *PdfService) RenderPage(ctx context.Context, pdfID string, pageNumber int, up PdfUpload) (models.RenderedPage, error) {
	doc, err := s.store.GetPdfDocument(ctx, pdfID)
	if err != nil {
		return models.RenderedPage{}, err
	}
	if pageNumber < 1 || pageNumber > doc.TotalPages {
		return models.RenderedPage{}, apperr.BadRequest(fmt.Sprintf("invalid page number, PDF has %d pages", doc.TotalPages))
	}

	if cached, ok := doc.Rendered(pageNumber); ok {
		slog.Info("Page already rendered, returning cached entry.", "pdfId", pdfID, "pageNumber", pageNumber)
		return cached, nil
	}

	pagePath := fmt.Sprintf("%s-page%d.pdf", up.LocalPath, pageNumber)
	if err := s.engine.ExtractPage(up.LocalPath, pagePath, pageNumber); err != nil {
		return models.RenderedPage{}, apperr.BadRequest(fmt.Sprintf("could not extract page %d: %v", pageNumber, err))
	}
	defer os.Remove(pagePath)

	asset, err := s.assets.UploadFile(ctx, pagePath, "application/pdf")
	if err != nil {
		return models.RenderedPage{}, err
	}

	// No server-side raster pipeline exists; thumbnail and high-res point at
	// the same artifact and the client renders at the scale it needs.
	entry := models.RenderedPage{
		PageNumber:   pageNumber,
		ThumbnailURL: asset.URL,
		HighResURL:   asset.URL,
	}
	stored, appended, err := s.store.AppendRenderedPage(ctx, pdfID, entry)
	if err != nil {
		return models.RenderedPage{}, err
	}
	if !appended {
		slog.Info("Concurrent render detected, kept first entry.", "pdfId", pdfID, "pageNumber", pageNumber)
	}
	return stored, nil
}

// GetPdfDocument returns the stored metadata and render cache for one PDF.
func (s *PdfService) GetPdfDocument(ctx context.Context, pdfID string) (models.PdfDocument, error) {
	return s.store.GetPdfDocument(ctx, pdfID)
}
