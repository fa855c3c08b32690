package dto

type CreatePostRequest struct {
	Title  string   `json:"title" binding:"required,min=1"`
	Text   string   `json:"text" binding:"required"`
	Topics []string `json:"topics"`
}

type EditPostRequest struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

type UpdateTopicsRequest struct {
	Topics []string `json:"topics" binding:"required"`
}
