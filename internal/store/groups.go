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

// ListGroups returns all groups in insertion order. A connectivity failure is
// returned to the caller; the handler converts it into an explicit error
// response.
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	snaps, err := s.client.Collection(s.collections.Groups).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	groups := make([]models.Group, 0, len(snaps))
	for _, snap := range snaps {
		var g models.Group
		if err := snap.DataTo(&g); err != nil {
			return nil, fmt.Errorf("failed to decode group %s: %w", snap.Ref.ID, err)
		}
		g.ID = snap.Ref.ID
		groups = append(groups, g)
	}
	return groups, nil
}

// GetGroup fetches one group by id.
func (s *Store) GetGroup(ctx context.Context, id string) (models.Group, error) {
	snap, err := s.client.Collection(s.collections.Groups).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.Group{}, apperr.NotFound("group not found")
	}
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to get group %s: %w", id, err)
	}
	var g models.Group
	if err := snap.DataTo(&g); err != nil {
		return models.Group{}, fmt.Errorf("failed to decode group %s: %w", id, err)
	}
	g.ID = snap.Ref.ID
	return g, nil
}

// CreateGroup inserts a new group record. Used by the seed command only;
// in-band traffic never creates groups.
func (s *Store) CreateGroup(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	if g.MemberCount == 0 {
		g.MemberCount = 50
	}
	if g.PageRefs == nil {
		g.PageRefs = []string{}
	}
	if g.AttachmentSnapshot == nil {
		g.AttachmentSnapshot = []models.Attachment{}
	}

	ref, _, err := s.client.Collection(s.collections.Groups).Add(ctx, g)
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to create group: %w", err)
	}
	g.ID = ref.ID
	return g, nil
}

// FanOutPage propagates a newly published page into each target group: the
// group's attachment snapshot is overwritten (not merged) with the page's
// attachment list and the page id is appended to its page references. Ids
// that do not resolve are skipped without error. All updates happen in one
// Firestore transaction, so a fan-out either updates every resolved group or
// none of them. Returns the ids of the groups updated.
func (s *Store) FanOutPage(ctx context.Context, pageID string, groupIDs []string, attachments []models.Attachment) ([]string, error) {
	if attachments == nil {
		attachments = []models.Attachment{}
	}

	var updated []string
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		updated = updated[:0]

		// Transactions require all reads before any write.
		var resolved []*firestore.DocumentRef
		for _, id := range groupIDs {
			ref := s.client.Collection(s.collections.Groups).Doc(id)
			_, err := tx.Get(ref)
			if status.Code(err) == codes.NotFound {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to read group %s: %w", id, err)
			}
			resolved = append(resolved, ref)
		}

		for _, ref := range resolved {
			updates := []firestore.Update{
				{Path: "groupAttachments", Value: attachments},
				{Path: "pageRefs", Value: firestore.ArrayUnion(pageID)},
				{Path: "updatedAt", Value: time.Now()},
			}
			if err := tx.Update(ref, updates); err != nil {
				return fmt.Errorf("failed to update group %s: %w", ref.ID, err)
			}
			updated = append(updated, ref.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fan-out for page %s failed: %w", pageID, err)
	}
	return updated, nil
}
