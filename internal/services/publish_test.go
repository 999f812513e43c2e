package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/models"
)

func previewFile() *UploadedFile {
	return &UploadedFile{
		FieldName:   "pageImage",
		FileName:    "preview.png",
		ContentType: "image/png",
		LocalPath:   "/tmp/preview.png",
	}
}

func TestPublish_RequiresPreviewImage(t *testing.T) {
	st := &fakePageStore{}
	p := NewPublisher(st, &fakeAssets{})

	_, err := p.Publish(context.Background(), PublishInput{Name: "Intro"})
	if apperr.KindOf(err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
	if len(st.created) != 0 {
		t.Fatalf("no page should be created, got %d", len(st.created))
	}
}

func TestPublish_RejectsMalformedGroupList(t *testing.T) {
	st := &fakePageStore{}
	fa := &fakeAssets{}
	p := NewPublisher(st, fa)

	_, err := p.Publish(context.Background(), PublishInput{
		Name:            "Intro",
		PreviewImage:    previewFile(),
		TargetGroupsRaw: "not-json",
	})
	if apperr.KindOf(err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
	if fa.fileUploadCount() != 0 {
		t.Fatalf("group parsing must fail before any upload, got %d uploads", fa.fileUploadCount())
	}
}

func TestPublish_RejectsMalformedCanvasData(t *testing.T) {
	st := &fakePageStore{}
	p := NewPublisher(st, &fakeAssets{})

	_, err := p.Publish(context.Background(), PublishInput{
		Name:         "Intro",
		PreviewImage: previewFile(),
		CanvasData:   "{broken",
	})
	if apperr.KindOf(err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
	if len(st.created) != 0 {
		t.Fatalf("no page should be created on canvas parse failure")
	}
}

func TestPublish_AttachmentOrderAndKindsPreserved(t *testing.T) {
	st := &fakePageStore{}
	p := NewPublisher(st, &fakeAssets{})

	files := []UploadedFile{
		{FileName: "notes.pdf", ContentType: "application/pdf", LocalPath: "/tmp/a-notes.pdf"},
		{FileName: "lecture.mp3", ContentType: "audio/mpeg", LocalPath: "/tmp/b-lecture.mp3"},
		{FileName: "misc.bin", ContentType: "application/octet-stream", LocalPath: "/tmp/c-misc.bin"},
	}
	page, err := p.Publish(context.Background(), PublishInput{
		Name:            "Intro",
		PreviewImage:    previewFile(),
		AttachmentFiles: files,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(page.Attachments) != 3 {
		t.Fatalf("expected 3 attachments, got %d", len(page.Attachments))
	}

	wantKinds := []models.AttachmentKind{models.AttachmentPdf, models.AttachmentAudio, models.AttachmentUnknown}
	wantURLs := []string{"https://cdn.test/a-notes.pdf", "https://cdn.test/b-lecture.mp3", "https://cdn.test/c-misc.bin"}
	for i, a := range page.Attachments {
		if a.Kind != wantKinds[i] {
			t.Fatalf("attachment %d: expected kind %q, got %q", i, wantKinds[i], a.Kind)
		}
		if a.URL != wantURLs[i] {
			t.Fatalf("attachment %d: expected url %q, got %q", i, wantURLs[i], a.URL)
		}
	}
	if page.PreviewImage != "https://cdn.test/preview.png" {
		t.Fatalf("unexpected preview url %q", page.PreviewImage)
	}
}

func TestPublish_FanOutSkipsUnresolvedGroups(t *testing.T) {
	st := &fakePageStore{
		groups: map[string]*models.Group{
			"g1": {ID: "g1", Name: "DSA Group"},
		},
	}
	p := NewPublisher(st, &fakeAssets{})

	page, err := p.Publish(context.Background(), PublishInput{
		Name:         "Intro",
		PreviewImage: previewFile(),
		AttachmentFiles: []UploadedFile{
			{FileName: "notes.pdf", ContentType: "application/pdf", LocalPath: "/tmp/notes.pdf"},
		},
		TargetGroupsRaw: `["g1","missing"]`,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(st.created) != 1 {
		t.Fatalf("expected exactly one page, got %d", len(st.created))
	}
	if got := st.groups["g1"].PageRefs; len(got) != 1 || got[0] != page.ID {
		t.Fatalf("expected g1 pageRefs [%s], got %v", page.ID, got)
	}
	if len(page.TargetGroups) != 2 {
		t.Fatalf("the page keeps all submitted group ids, got %v", page.TargetGroups)
	}
}

func TestPublish_SnapshotIsOverwrittenNotMerged(t *testing.T) {
	// The group snapshot holds only the most recent page's attachments. The
	// intent behind overwrite-vs-accumulate is ambiguous upstream; this pins
	// the literal overwrite behavior.
	st := &fakePageStore{
		groups: map[string]*models.Group{
			"g1": {ID: "g1", Name: "DSA Group"},
		},
	}
	p := NewPublisher(st, &fakeAssets{})

	publish := func(localPath string) {
		t.Helper()
		_, err := p.Publish(context.Background(), PublishInput{
			Name:         "Intro",
			PreviewImage: previewFile(),
			AttachmentFiles: []UploadedFile{
				{FileName: localPath, ContentType: "application/pdf", LocalPath: "/tmp/" + localPath},
			},
			TargetGroupsRaw: `["g1"]`,
		})
		if err != nil {
			t.Fatalf("publish failed: %v", err)
		}
	}
	publish("first.pdf")
	publish("second.pdf")

	g := st.groups["g1"]
	if len(g.PageRefs) != 2 {
		t.Fatalf("expected 2 page refs, got %d", len(g.PageRefs))
	}
	if len(g.AttachmentSnapshot) != 1 || g.AttachmentSnapshot[0].URL != "https://cdn.test/second.pdf" {
		t.Fatalf("snapshot should hold only the latest page's attachments, got %v", g.AttachmentSnapshot)
	}
}

func TestPublish_UploadFailureAbortsBeforePersistence(t *testing.T) {
	st := &fakePageStore{}
	fa := &fakeAssets{failPaths: map[string]error{
		"/tmp/notes.pdf": fmt.Errorf("bucket unavailable"),
	}}
	p := NewPublisher(st, fa)

	_, err := p.Publish(context.Background(), PublishInput{
		Name:         "Intro",
		PreviewImage: previewFile(),
		AttachmentFiles: []UploadedFile{
			{FileName: "notes.pdf", ContentType: "application/pdf", LocalPath: "/tmp/notes.pdf"},
		},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(st.created) != 0 {
		t.Fatalf("no page should be created when an upload fails")
	}
}

func TestPublish_FanOutFailureLeavesPageCommitted(t *testing.T) {
	st := &fakePageStore{fanOutErr: errors.New("transaction aborted")}
	p := NewPublisher(st, &fakeAssets{})

	_, err := p.Publish(context.Background(), PublishInput{
		Name:            "Intro",
		PreviewImage:    previewFile(),
		TargetGroupsRaw: `["g1"]`,
	})
	if err == nil {
		t.Fatal("expected the fan-out error to surface")
	}
	if len(st.created) != 1 {
		t.Fatalf("the page is committed before fan-out and is not rolled back, got %d pages", len(st.created))
	}
}

func TestClassifyAttachment(t *testing.T) {
	cases := []struct {
		contentType string
		want        models.AttachmentKind
	}{
		{"application/pdf", models.AttachmentPdf},
		{"application/pdf; charset=binary", models.AttachmentPdf},
		{"audio/mpeg", models.AttachmentAudio},
		{"audio/wav", models.AttachmentAudio},
		{"audio/aac", models.AttachmentAudio},
		{"audio/ogg", models.AttachmentAudio},
		{"audio/flac", models.AttachmentAudio},
		{"audio/mp4", models.AttachmentAudio},
		{"audio/webm", models.AttachmentAudio},
		{"AUDIO/MPEG", models.AttachmentAudio},
		{"audio/x-midi", models.AttachmentUnknown},
		{"image/png", models.AttachmentUnknown},
		{"", models.AttachmentUnknown},
	}
	for _, tc := range cases {
		if got := ClassifyAttachment(tc.contentType); got != tc.want {
			t.Fatalf("ClassifyAttachment(%q) = %q, want %q", tc.contentType, got, tc.want)
		}
	}
}
