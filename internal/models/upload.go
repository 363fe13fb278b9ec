package models

// PresignedURL is the result of an upload-URL request: a write-capable
// presigned URL and the public URL the object will be readable from.
type PresignedURL struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
}
