package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"plain error is internal", cause, Internal},
		{"typed", New(NotFound, "Post not found"), NotFound},
		{"wrapped typed", fmt.Errorf("handler: %w", New(PermissionDenied, "nope")), PermissionDenied},
		{"typed with cause", Wrap(FailedPrecondition, "API configuration error", cause), FailedPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorKeepsCause(t *testing.T) {
	cause := errors.New("upstream 529")
	err := Wrap(Internal, "Error analyzing post performance", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "upstream 529", err.Details())
	assert.Contains(t, err.Error(), "Error analyzing post performance")
	assert.True(t, Is(err, Internal))
	assert.False(t, Is(err, NotFound))
}

func TestDetailsEmptyWithoutCause(t *testing.T) {
	assert.Empty(t, New(InvalidArgument, "Post ID is required").Details())
}
