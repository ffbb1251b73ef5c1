package models

// UploadRequest is the POST /upload body. FileContent is base64-encoded.
type UploadRequest struct {
	FileName    string `json:"file_name"`
	FileContent string `json:"file_content"`
	Email       string `json:"email"`
}

// UploadResponse carries the public URL of the stored object.
type UploadResponse struct {
	FileURL string `json:"file_url"`
}

// FileEntry is one listed object. ItemName is the object key with the owner
// prefix and any generated identifier prefix stripped.
type FileEntry struct {
	Key      string `json:"key"`
	ItemName string `json:"item_name"`
	Size     int64  `json:"size"`
}
