package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/assets"
	"github.com/devhardik21/RootStudy/internal/models"
)

// PageStore is the slice of the persistence layer the publisher needs.
type PageStore interface {
	CreatePage(ctx context.Context, p models.Page) (models.Page, error)
	FanOutPage(ctx context.Context, pageID string, groupIDs []string, attachments []models.Attachment) ([]string, error)
}

// UploadedFile describes one multipart file already spooled to local disk.
// The caller owns the temp files and removes them on every exit path.
type UploadedFile struct {
	FieldName   string
	FileName    string
	ContentType string
	LocalPath   string
}

// PublishInput carries everything a publish request submits. CanvasData and
// TargetGroupsRaw arrive as the serialized strings the frontend sends.
type PublishInput struct {
	Name            string
	CanvasData      string
	Transcription   string
	PreviewImage    *UploadedFile
	AttachmentFiles []UploadedFile
	TargetGroupsRaw string
}

// Publisher implements the page publication workflow: validate, upload the
// preview and attachments, persist the page, fan out to target groups.
type Publisher struct {
	store  PageStore
	assets assets.Store
}

func NewPublisher(store PageStore, assetStore assets.Store) *Publisher {
	return &Publisher{store: store, assets: assetStore}
}

// audioContentTypes is the fixed allow-list for the audio attachment kind.
var audioContentTypes = map[string]struct{}{
	"audio/mpeg": {},
	"audio/wav":  {},
	"audio/aac":  {},
	"audio/ogg":  {},
	"audio/flac": {},
	"audio/mp4":  {},
	"audio/webm": {},
}

// ClassifyAttachment maps a declared content type to an attachment kind.
// Unrecognized types are stored as unknown rather than rejected.
func ClassifyAttachment(contentType string) models.AttachmentKind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if strings.Contains(ct, "application/pdf") {
		return models.AttachmentPdf
	}
	if _, ok := audioContentTypes[ct]; ok {
		return models.AttachmentAudio
	}
	return models.AttachmentUnknown
}

// Publish runs the full workflow. Any failure before the page record is
// created aborts without persisting anything. The fan-out runs after the page
// is committed: if it fails the page still exists and the error is surfaced.
func (p *Publisher) Publish(ctx context.Context, in PublishInput) (models.Page, error) {
	groupIDs, err := parseGroupIDs(in.TargetGroupsRaw)
	if err != nil {
		return models.Page{}, err
	}

	if in.PreviewImage == nil {
		return models.Page{}, apperr.BadRequest("page preview image is required")
	}
	preview, err := p.assets.UploadFile(ctx, in.PreviewImage.LocalPath, in.PreviewImage.ContentType)
	if err != nil {
		return models.Page{}, err
	}

	attachments, err := p.uploadAttachments(ctx, in.AttachmentFiles)
	if err != nil {
		return models.Page{}, err
	}

	canvas, err := parseCanvasData(in.CanvasData)
	if err != nil {
		return models.Page{}, err
	}

	page := models.Page{
		Name:          in.Name,
		PreviewImage:  preview.URL,
		CanvasData:    canvas,
		Transcription: in.Transcription,
		Attachments:   attachments,
		TargetGroups:  groupIDs,
	}
	created, err := p.store.CreatePage(ctx, page)
	if err != nil {
		return models.Page{}, err
	}

	updated, err := p.store.FanOutPage(ctx, created.ID, groupIDs, attachments)
	if err != nil {
		// The page is already committed and is not rolled back.
		slog.Error("Fan-out failed after page creation.", "pageId", created.ID, "error", err)
		return models.Page{}, err
	}

	slog.Info("Page published.",
		"pageId", created.ID,
		"attachments", len(attachments),
		"groupsTargeted", len(groupIDs),
		"groupsUpdated", len(updated),
	)
	return created, nil
}

// uploadAttachments classifies and uploads each file. Uploads run
// concurrently but results are written by input index, so the returned list
// preserves input file order.
func (p *Publisher) uploadAttachments(ctx context.Context, files []UploadedFile) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, len(files))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	for i, f := range files {
		eg.Go(func() error {
			asset, err := p.assets.UploadFile(gctx, f.LocalPath, f.ContentType)
			if err != nil {
				return fmt.Errorf("attachment %s: %w", f.FileName, err)
			}
			attachments[i] = models.Attachment{
				Kind: ClassifyAttachment(f.ContentType),
				URL:  asset.URL,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return attachments, nil
}

// parseGroupIDs decodes the serialized target group list. An empty value
// targets no groups; malformed JSON is a client error.
func parseGroupIDs(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, apperr.BadRequest(fmt.Sprintf("could not parse sentGroups: %v", err))
	}
	return ids, nil
}

// parseCanvasData decodes the serialized drawing state. The structure is
// opaque to the backend; it is stored as submitted.
func parseCanvasData(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var canvas map[string]any
	if err := json.Unmarshal([]byte(raw), &canvas); err != nil {
		return nil, apperr.BadRequest(fmt.Sprintf("could not parse canvasData: %v", err))
	}
	return canvas, nil
}
