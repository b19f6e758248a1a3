package dto

import "github.com/summit-seekers/forum-service/internal/model"

type GetPost struct {
	Post    model.FullPost `json:"post"`
	Upvoted bool           `json:"upvoted"`
}

type UpvoteResponse struct {
	Upvotes int64 `json:"upvotes"`
}
