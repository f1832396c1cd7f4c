package queue

import (
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/service"
)

// Queue runs delayed publish tasks through the same publish step as the
// sweep.
type Queue struct {
	pr repository.PostRepository
	ps service.PublishService
}

func NewQueue(pr repository.PostRepository, ps service.PublishService) *Queue {
	return &Queue{
		pr: pr,
		ps: ps,
	}
}

const TaskTypePublishPost = "post:publish"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
