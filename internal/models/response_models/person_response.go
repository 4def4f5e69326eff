package response_models

type Person struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	SocialURL   string `json:"social_url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}
