package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
)

var (
	errUnauthenticated  = apperror.New(apperror.Unauthenticated, "The function must be called while authenticated.")
	errConcurrentChange = apperror.New(apperror.FailedPrecondition, "post changed concurrently")
)

// internalError logs err and returns it as an internal error. Errors that
// already carry a kind pass through unchanged.
func internalError(message string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	slog.Info(err.Error())
	return apperror.Wrap(apperror.Internal, message, err)
}

// ownedPost loads postID and checks that userID owns it.
func ownedPost(ctx context.Context, posts repository.PostRepository, userID, postID int64) (*models.Post, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}
	if postID == 0 {
		return nil, apperror.New(apperror.InvalidArgument, "post id is required")
	}

	post, err := posts.GetByID(ctx, postID)
	if err != nil {
		return nil, internalError("Error getting post info", err)
	}
	if post == nil {
		return nil, apperror.New(apperror.NotFound, "Post not found")
	}
	if post.UserID != userID {
		slog.Info("post access denied", "post_id", postID, "user_id", userID)
		return nil, apperror.New(apperror.PermissionDenied, "You don't have permission to access this post")
	}
	return post, nil
}

func normalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = trimHashtag(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func trimHashtag(tag string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(tag), "#"))
}
