package request_models

type IngestRequest struct {
	URL    string `json:"url" binding:"required,url"`
	Source string `json:"source" binding:"required"`
}
