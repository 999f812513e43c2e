package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/models"
	"github.com/devhardik21/RootStudy/internal/services"
)

type stubPdfService struct {
	doc          models.PdfDocument
	entry        models.RenderedPage
	err          error
	gotUpload    services.PdfUpload
	gotLinked    string
	gotPdfID     string
	gotPageNum   int
	renderCalled bool
}

func (s *stubPdfService) UploadPdf(ctx context.Context, up services.PdfUpload, linkedPageID string) (models.PdfDocument, error) {
	s.gotUpload = up
	s.gotLinked = linkedPageID
	return s.doc, s.err
}

func (s *stubPdfService) RenderPage(ctx context.Context, pdfID string, pageNumber int, up services.PdfUpload) (models.RenderedPage, error) {
	s.renderCalled = true
	s.gotPdfID = pdfID
	s.gotPageNum = pageNumber
	s.gotUpload = up
	return s.entry, s.err
}

func (s *stubPdfService) GetPdfDocument(ctx context.Context, pdfID string) (models.PdfDocument, error) {
	s.gotPdfID = pdfID
	return s.doc, s.err
}

func newPdfRouter(svc PdfServicer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPdfHandler(svc)
	r := gin.New()
	pdf := r.Group("/api/pdf")
	pdf.POST("/upload", h.Upload)
	pdf.POST("/render-page", h.RenderPage)
	pdf.GET("/:pdfId", h.Get)
	return r
}

func pdfForm(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	if withFile {
		addFile(t, w, "pdf", "lecture.pdf", "application/pdf", "%PDF-1.4 fake")
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestUploadPdfRespondsWithEnvelope(t *testing.T) {
	svc := &stubPdfService{doc: models.PdfDocument{
		ID:            "pdf-1",
		FileName:      "lecture.pdf",
		FileSizeBytes: 13,
		TotalPages:    9,
	}}
	r := newPdfRouter(svc)

	body, contentType := pdfForm(t, map[string]string{"projectId": "page-7"}, true)
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotLinked != "page-7" {
		t.Fatalf("projectId not carried through, got %q", svc.gotLinked)
	}
	if svc.gotUpload.FileName != "lecture.pdf" || svc.gotUpload.ContentType != "application/pdf" {
		t.Fatalf("upload metadata wrong: %+v", svc.gotUpload)
	}

	var resp models.PdfEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if !resp.Success || resp.Message != "PDF uploaded successfully" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUploadPdfWithoutFileIs400(t *testing.T) {
	svc := &stubPdfService{}
	r := newPdfRouter(svc)

	body, contentType := pdfForm(t, nil, false)
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.PdfEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Success || resp.Message != "no PDF file uploaded" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestRenderPageRequiresIDAndNumber(t *testing.T) {
	cases := []map[string]string{
		{"pageNumber": "3"},
		{"pdfId": "pdf-1"},
		{"pdfId": "pdf-1", "pageNumber": "three"},
	}
	for _, fields := range cases {
		svc := &stubPdfService{}
		r := newPdfRouter(svc)

		body, contentType := pdfForm(t, fields, true)
		req := httptest.NewRequest(http.MethodPost, "/api/pdf/render-page", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("fields %v: expected 400, got %d", fields, rec.Code)
		}
		if svc.renderCalled {
			t.Fatalf("fields %v: service should not be reached", fields)
		}
		var resp models.PdfEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if resp.Message != "PDF ID and page number are required" {
			t.Fatalf("unexpected message %q", resp.Message)
		}
	}
}

func TestRenderPagePassesThroughEntry(t *testing.T) {
	svc := &stubPdfService{entry: models.RenderedPage{
		PageNumber:   3,
		ThumbnailURL: "https://cdn.test/assets/p3.pdf",
		HighResURL:   "https://cdn.test/assets/p3.pdf",
	}}
	r := newPdfRouter(svc)

	body, contentType := pdfForm(t, map[string]string{"pdfId": "pdf-1", "pageNumber": "3", "quality": "high"}, true)
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/render-page", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotPdfID != "pdf-1" || svc.gotPageNum != 3 {
		t.Fatalf("service called with %q page %d", svc.gotPdfID, svc.gotPageNum)
	}
}

func TestGetPdfNotFoundIs404(t *testing.T) {
	svc := &stubPdfService{err: apperr.NotFound("PDF not found")}
	r := newPdfRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/pdf/missing-id", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if svc.gotPdfID != "missing-id" {
		t.Fatalf("param not carried through, got %q", svc.gotPdfID)
	}
}
