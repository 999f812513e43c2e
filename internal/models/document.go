package models

import "time"

// AttachmentKind classifies a published file by its declared content type.
type AttachmentKind string

const (
	AttachmentPdf     AttachmentKind = "pdf"
	AttachmentAudio   AttachmentKind = "audio"
	AttachmentUnknown AttachmentKind = "unknown"
)

// Attachment is a non-preview file carried by a page.
type Attachment struct {
	Kind AttachmentKind `firestore:"type" json:"type"`
	URL  string         `firestore:"url" json:"url"`
}

// Group is a named recipient collection (e.g. a class). It is created by the
// seed command and mutated only by the page publication fan-out.
type Group struct {
	ID                 string       `firestore:"-" json:"id"`
	Name               string       `firestore:"groupName" json:"groupName"`
	Image              string       `firestore:"groupImage,omitempty" json:"groupImage,omitempty"`
	MemberCount        int          `firestore:"numberOfStudents" json:"numberOfStudents"`
	PageRefs           []string     `firestore:"pageRefs" json:"pageRefs"`
	AttachmentSnapshot []Attachment `firestore:"groupAttachments" json:"groupAttachments"`
	CreatedAt          time.Time    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time    `firestore:"updatedAt" json:"updatedAt"`
}

// Page is a published unit of authored content. Immutable once created.
type Page struct {
	ID            string         `firestore:"-" json:"id"`
	Name          string         `firestore:"pageName" json:"pageName"`
	PreviewImage  string         `firestore:"pageImage" json:"pageImage"`
	CanvasData    map[string]any `firestore:"canvasData,omitempty" json:"canvasData,omitempty"`
	Transcription string         `firestore:"transcription,omitempty" json:"transcription,omitempty"`
	Attachments   []Attachment   `firestore:"attachments" json:"attachments"`
	TargetGroups  []string       `firestore:"sentGroups" json:"sentGroups"`
	CreatedAt     time.Time      `firestore:"createdAt" json:"createdAt"`
}

// RenderedPage is one cached per-page render of a source PDF. Both URLs point
// at the same stored artifact; rendering at different scales is a client
// concern.
type RenderedPage struct {
	PageNumber   int    `firestore:"pageNumber" json:"pageNumber"`
	ThumbnailURL string `firestore:"thumbnailUrl" json:"thumbnailUrl"`
	HighResURL   string `firestore:"highResUrl" json:"highResUrl"`
}

// PdfDocument holds upload-time metadata for a source PDF and the per-page
// render cache. The original binary is not retained; renderedPages grows
// monotonically as pages are requested.
type PdfDocument struct {
	ID            string         `firestore:"-" json:"pdfId"`
	FileName      string         `firestore:"fileName" json:"fileName"`
	FileSizeBytes int64          `firestore:"fileSize" json:"fileSize"`
	TotalPages    int            `firestore:"totalPages" json:"totalPages"`
	LinkedPageID  string         `firestore:"projectId,omitempty" json:"projectId,omitempty"`
	RenderedPages []RenderedPage `firestore:"uploadedPages" json:"uploadedPages"`
	CreatedAt     time.Time      `firestore:"createdAt" json:"createdAt"`
}

// Rendered returns the cached render for pageNumber, if present.
func (d *PdfDocument) Rendered(pageNumber int) (RenderedPage, bool) {
	for _, p := range d.RenderedPages {
		if p.PageNumber == pageNumber {
			return p, true
		}
	}
	return RenderedPage{}, false
}
