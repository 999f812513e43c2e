package services

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/devhardik21/RootStudy/internal/assets"
	"github.com/devhardik21/RootStudy/internal/models"
)

// fakeAssets records uploads and derives URLs from the source path so tests
// can tie results back to inputs. Safe for concurrent use.
type fakeAssets struct {
	mu          sync.Mutex
	fileUploads []string
	byteUploads int
	failPaths   map[string]error
}

func (f *fakeAssets) UploadFile(ctx context.Context, localPath, contentType string) (assets.Asset, error) {
	f.mu.Lock()
	f.fileUploads = append(f.fileUploads, localPath)
	f.mu.Unlock()
	if err, ok := f.failPaths[localPath]; ok {
		return assets.Asset{}, err
	}
	name := path.Base(localPath)
	return assets.Asset{URL: "https://cdn.test/" + name, ID: name}, nil
}

func (f *fakeAssets) UploadBytes(ctx context.Context, data []byte, contentType string) (assets.Asset, error) {
	f.mu.Lock()
	f.byteUploads++
	n := f.byteUploads
	f.mu.Unlock()
	id := fmt.Sprintf("buffer-%d", n)
	return assets.Asset{URL: "https://cdn.test/" + id, ID: id}, nil
}

func (f *fakeAssets) fileUploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fileUploads)
}

// fakePageStore keeps pages and groups in memory with the same fan-out
// semantics as the Firestore store: unresolved ids are skipped, the
// attachment snapshot is overwritten, the page id is appended.
type fakePageStore struct {
	created   []models.Page
	createErr error

	groups    map[string]*models.Group
	fanOutErr error
}

func (s *fakePageStore) CreatePage(ctx context.Context, p models.Page) (models.Page, error) {
	if s.createErr != nil {
		return models.Page{}, s.createErr
	}
	p.ID = fmt.Sprintf("page-%d", len(s.created)+1)
	s.created = append(s.created, p)
	return p, nil
}

func (s *fakePageStore) FanOutPage(ctx context.Context, pageID string, groupIDs []string, attachments []models.Attachment) ([]string, error) {
	if s.fanOutErr != nil {
		return nil, s.fanOutErr
	}
	var updated []string
	for _, id := range groupIDs {
		g, ok := s.groups[id]
		if !ok {
			continue
		}
		g.AttachmentSnapshot = attachments
		g.PageRefs = append(g.PageRefs, pageID)
		updated = append(updated, id)
	}
	return updated, nil
}
