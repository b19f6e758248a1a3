package dto

type CreatePostRequest struct {
	Title    string   `json:"title" binding:"required,min=1"`
	Content  string   `json:"content"`
	ImageURL string   `json:"image_url"`
	Location string   `json:"location"`
	Grade    string   `json:"grade"`
	Flags    []string `json:"flags"`
}

type EditPostRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	ImageURL *string   `json:"image_url"`
	Location *string   `json:"location"`
	Grade    *string   `json:"grade"`
	Flags    *[]string `json:"flags"`
}
