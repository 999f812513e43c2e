package models

// These structs define the JSON payloads exchanged with the frontend.

// GroupsResponse is the body of GET /api/groups.
type GroupsResponse struct {
	Message string  `json:"message"`
	Groups  []Group `json:"groups"`
}

// CreatePageResponse is the body of POST /api/create-page.
type CreatePageResponse struct {
	Message string `json:"message"`
	Page    Page   `json:"page"`
}

// TextRequest is the body of POST /api/text.
type TextRequest struct {
	Prompt string `json:"prompt"`
}

// TextResponse is the body of the text generation proxy.
type TextResponse struct {
	Text string `json:"text"`
}

// ImageRequest is the body of POST /api/image.
type ImageRequest struct {
	Prompt string `json:"prompt"`
}

// ImageResponse is the body of the image generation proxy.
type ImageResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}

// YouTubeRequest is the body of POST /api/youtube.
type YouTubeRequest struct {
	Topic string `json:"topic"`
}

// YouTubeVideo is one suggested video in the YouTube proxy response.
type YouTubeVideo struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	VideoURL     string `json:"videoUrl"`
	EmbedURL     string `json:"embedUrl"`
}

// YouTubeResponse is the body of the video suggestion proxy.
type YouTubeResponse struct {
	Message string         `json:"message"`
	Topic   string         `json:"topic"`
	Count   int            `json:"count"`
	Videos  []YouTubeVideo `json:"videos"`
}

// PdfUploadData is the data payload of POST /api/pdf/upload.
type PdfUploadData struct {
	PdfID      string `json:"pdfId"`
	FileName   string `json:"fileName"`
	TotalPages int    `json:"totalPages"`
	FileSize   int64  `json:"fileSize"`
}

// PdfEnvelope wraps every /api/pdf response.
type PdfEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
