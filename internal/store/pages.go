package store

import (
	"context"
	"fmt"
	"time"

	"github.com/devhardik21/RootStudy/internal/models"
)

// CreatePage persists a new page record. Pages are immutable once created;
// there is no update or delete path.
func (s *Store) CreatePage(ctx context.Context, p models.Page) (models.Page, error) {
	p.CreatedAt = time.Now()
	if p.Attachments == nil {
		p.Attachments = []models.Attachment{}
	}
	if p.TargetGroups == nil {
		p.TargetGroups = []string{}
	}

	ref, _, err := s.client.Collection(s.collections.Pages).Add(ctx, p)
	if err != nil {
		return models.Page{}, fmt.Errorf("failed to create page: %w", err)
	}
	p.ID = ref.ID
	return p, nil
}
