package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/models"
)

// CreatePdfDocument persists upload-time metadata for a source PDF.
func (s *Store) CreatePdfDocument(ctx context.Context, d models.PdfDocument) (models.PdfDocument, error) {
	d.CreatedAt = time.Now()
	if d.RenderedPages == nil {
		d.RenderedPages = []models.RenderedPage{}
	}

	ref, _, err := s.client.Collection(s.collections.Pdfs).Add(ctx, d)
	if err != nil {
		return models.PdfDocument{}, fmt.Errorf("failed to create pdf document: %w", err)
	}
	d.ID = ref.ID
	return d, nil
}

// GetPdfDocument fetches one PDF document by id.
func (s *Store) GetPdfDocument(ctx context.Context, id string) (models.PdfDocument, error) {
	snap, err := s.client.Collection(s.collections.Pdfs).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.PdfDocument{}, apperr.NotFound("PDF document not found")
	}
	if err != nil {
		return models.PdfDocument{}, fmt.Errorf("failed to get pdf document %s: %w", id, err)
	}
	var d models.PdfDocument
	if err := snap.DataTo(&d); err != nil {
		return models.PdfDocument{}, fmt.Errorf("failed to decode pdf document %s: %w", id, err)
	}
	d.ID = snap.Ref.ID
	return d, nil
}

// AppendRenderedPage records one rendered page. The append runs in a
// transaction that re-checks the cache, so a page number is recorded at most
// once per document even under concurrent render requests. Returns the stored
// entry and whether this call appended it.
func (s *Store) AppendRenderedPage(ctx context.Context, id string, entry models.RenderedPage) (models.RenderedPage, bool, error) {
	ref := s.client.Collection(s.collections.Pdfs).Doc(id)

	var stored models.RenderedPage
	var appended bool
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return apperr.NotFound("PDF document not found")
		}
		if err != nil {
			return err
		}
		var d models.PdfDocument
		if err := snap.DataTo(&d); err != nil {
			return err
		}

		if existing, ok := d.Rendered(entry.PageNumber); ok {
			stored = existing
			appended = false
			return nil
		}

		stored = entry
		appended = true
		return tx.Update(ref, []firestore.Update{
			{Path: "uploadedPages", Value: append(d.RenderedPages, entry)},
		})
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return models.RenderedPage{}, false, err
		}
		return models.RenderedPage{}, false, fmt.Errorf("failed to record rendered page %d for %s: %w", entry.PageNumber, id, err)
	}
	return stored, appended, nil
}
