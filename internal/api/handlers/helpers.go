package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/postcal/internal/apperror"
)

func GetUserID(c *fiber.Ctx) int64 {
	raw, _ := c.Locals("user_id").(string)
	userID, _ := strconv.ParseInt(raw, 10, 64)
	return userID
}

var kindStatus = map[apperror.Kind]int{
	apperror.Unauthenticated:    fiber.StatusUnauthorized,
	apperror.InvalidArgument:    fiber.StatusBadRequest,
	apperror.NotFound:           fiber.StatusNotFound,
	apperror.PermissionDenied:   fiber.StatusForbidden,
	apperror.FailedPrecondition: fiber.StatusPreconditionFailed,
	apperror.Internal:           fiber.StatusInternalServerError,
}

// writeError renders err with the status matching its kind. Errors without a
// kind are reported as internal without leaking their text.
func writeError(c *fiber.Ctx, err error) error {
	kind := apperror.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}

	body := fiber.Map{"code": kind}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		body["error"] = appErr.Message
		if details := appErr.Details(); details != "" {
			body["details"] = details
		}
	} else {
		body["error"] = "Internal server error"
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, message string) error {
	return writeError(c, apperror.New(apperror.InvalidArgument, message))
}

func postID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.New(apperror.InvalidArgument, "invalid post id")
	}
	return id, nil
}

// queryTime parses an RFC 3339 query value. An absent value yields nil.
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperror.New(apperror.InvalidArgument, key+" must be an RFC 3339 timestamp")
	}
	return &t, nil
}

func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, part := range strings.Split(c.Query(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
