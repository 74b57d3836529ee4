package model

// Resume is the stored metadata for the uploaded resume PDF. The file
// itself lives in object storage under Key.
type Resume struct {
	URL        string `json:"url"`
	Key        string `json:"key,omitempty"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size,omitempty"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

// DownloadEvent records one resume download.
type DownloadEvent struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	UserAgent string `json:"userAgent"`
	IP        string `json:"ip"`
}

// Info is the public resume payload: file metadata plus recent downloads.
type Info struct {
	URL           *string         `json:"url"`
	Filename      string          `json:"filename"`
	DownloadCount int             `json:"downloadCount"`
	Downloads     []DownloadEvent `json:"downloads"`
}
