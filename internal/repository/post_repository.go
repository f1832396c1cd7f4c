package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/maheshrc27/postcal/internal/models"
)

// PostRepository persists posts. List applies the user, status and date
// range predicates; platform membership is left to the caller.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	CreateBatch(ctx context.Context, posts []*models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	ListDue(ctx context.Context, from, to time.Time) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post, expected models.PostStatus) (bool, error)
	TransitionStatus(ctx context.Context, id int64, from, to models.PostStatus) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, content, platforms, scheduled_time, status, hashtags, media_urls, engagement, ai_generated, created_at, updated_at`

const insertPost = `
	INSERT INTO posts (user_id, content, platforms, scheduled_time, status, hashtags, media_urls, engagement, ai_generated, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	RETURNING id
`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertArgs(post *models.Post) ([]any, error) {
	engagement, err := engagementValue(post.Engagement)
	if err != nil {
		return nil, err
	}
	return []any{
		post.UserID,
		post.Content,
		pq.StringArray(platformStrings(post.Platforms)),
		post.ScheduledTime,
		post.Status,
		pq.StringArray(nonNil(post.Hashtags)),
		pq.StringArray(nonNil(post.MediaURLs)),
		engagement,
		post.AIGenerated,
		post.CreatedAt,
	}, nil
}

func createPost(ctx context.Context, q queryRower, post *models.Post) (int64, error) {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	args, err := insertArgs(post)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := q.QueryRowContext(ctx, insertPost, args...).Scan(&id); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	post.ID = id
	return id, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	return createPost(ctx, r.db, post)
}

// CreateBatch inserts every post in one transaction and fills in their ids.
func (r *postRepository) CreateBatch(ctx context.Context, posts []*models.Post) (err error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	for _, post := range posts {
		if _, err = createPost(ctx, tx, post); err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	query, args := buildListQuery(filter)
	return r.query(ctx, query, args...)
}

// ListDue returns scheduled posts whose time falls in [from, to].
func (r *postRepository) ListDue(ctx context.Context, from, to time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE status = $1 AND scheduled_time >= $2 AND scheduled_time <= $3
		ORDER BY scheduled_time ASC`
	return r.query(ctx, query, models.PostStatusScheduled, from, to)
}

func (r *postRepository) query(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

// Update writes every mutable field of post and bumps updated_at, provided
// the stored status still equals expected. It reports whether a row changed.
func (r *postRepository) Update(ctx context.Context, post *models.Post, expected models.PostStatus) (bool, error) {
	engagement, err := engagementValue(post.Engagement)
	if err != nil {
		return false, err
	}
	post.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE posts
		SET content = $1,
			platforms = $2,
			scheduled_time = $3,
			status = $4,
			hashtags = $5,
			media_urls = $6,
			engagement = $7,
			ai_generated = $8,
			updated_at = $9
		WHERE id = $10 AND status = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		post.Content,
		pq.StringArray(platformStrings(post.Platforms)),
		post.ScheduledTime,
		post.Status,
		pq.StringArray(nonNil(post.Hashtags)),
		pq.StringArray(nonNil(post.MediaURLs)),
		engagement,
		post.AIGenerated,
		post.UpdatedAt,
		post.ID,
		expected,
	)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return n == 1, nil
}

// TransitionStatus moves a post from one status to another only if it is
// still in the expected status. It reports whether a row changed.
func (r *postRepository) TransitionStatus(ctx context.Context, id int64, from, to models.PostStatus) (bool, error) {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return n == 1, nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func buildListQuery(filter models.PostFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT ` + postColumns + ` FROM posts WHERE user_id = $1`)
	args := []any{filter.UserID}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.StringArray(statuses))
		fmt.Fprintf(&b, " AND status = ANY($%d)", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&b, " AND scheduled_time >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&b, " AND scheduled_time <= $%d", len(args))
	}

	b.WriteString(" ORDER BY scheduled_time ASC")
	return b.String(), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post       models.Post
		platforms  pq.StringArray
		hashtags   pq.StringArray
		mediaURLs  pq.StringArray
		engagement []byte
	)
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&platforms,
		&post.ScheduledTime,
		&post.Status,
		&hashtags,
		&mediaURLs,
		&engagement,
		&post.AIGenerated,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Platforms = make([]models.Platform, len(platforms))
	for i, p := range platforms {
		post.Platforms[i] = models.Platform(p)
	}
	post.Hashtags = nonNil(hashtags)
	post.MediaURLs = nonNil(mediaURLs)

	if engagement != nil {
		var e models.Engagement
		if err := json.Unmarshal(engagement, &e); err != nil {
			return nil, fmt.Errorf("decoding engagement of post %d: %w", post.ID, err)
		}
		post.Engagement = &e
	}
	return &post, nil
}

// engagementValue encodes engagement for a JSONB column. pq sends []byte
// as bytea, so the JSON goes over as text.
func engagementValue(e *models.Engagement) (any, error) {
	if e == nil {
		return nil, nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func platformStrings(platforms []models.Platform) []string {
	out := make([]string, len(platforms))
	for i, p := range platforms {
		out[i] = string(p)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
