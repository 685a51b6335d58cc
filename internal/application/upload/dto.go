package upload

// UploadImageRequest carries a part image received from the client
type UploadImageRequest struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadImageResponse describes a stored part image. Reference is the
// value persisted on the label's image_url field.
type UploadImageResponse struct {
	Reference   string `json:"reference"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
