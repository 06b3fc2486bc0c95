package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Article mirrors a row of the articles table.
type Article struct {
	ID               int32
	Title            string
	ShortDescription string
	FullContent      string
	Icon             string
	DisplayOrder     int32
	IsPublished      bool
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

// CreateArticleParams are the inputs for CreateArticle. Defaults for Icon,
// DisplayOrder, and IsPublished are applied by the handler, not here.
type CreateArticleParams struct {
	Title            string
	ShortDescription string
	FullContent      string
	Icon             string
	DisplayOrder     int32
	IsPublished      bool
}

// UpdateArticleParams are the inputs for UpdateArticle. Every column is
// written unconditionally, matching the original handler's full-row update.
type UpdateArticleParams struct {
	ID               int32
	Title            string
	ShortDescription string
	FullContent      string
	Icon             string
	DisplayOrder     int32
	IsPublished      bool
}

// Querier abstracts article queries for testability.
type Querier interface {
	ListPublishedArticles(ctx context.Context) ([]Article, error)
	GetArticleByID(ctx context.Context, id int32) (Article, error)
	CreateArticle(ctx context.Context, arg CreateArticleParams) (Article, error)
	UpdateArticle(ctx context.Context, arg UpdateArticleParams) (Article, error)
	DeleteArticle(ctx context.Context, id int32) error
}

// Queries implements Querier against a pgx connection pool. Each call checks
// a connection out of the pool for the duration of the query and returns it
// unconditionally, so one invocation never pins a connection across calls.
type Queries struct {
	pool *pgxpool.Pool
}

// New creates a Queries backed by the given pool.
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

const articleColumns = `id, title, short_description, full_content, icon, display_order, is_published, created_at, updated_at`

// ListPublishedArticles returns published articles ordered by display_order,
// then newest first.
func (q *Queries) ListPublishedArticles(ctx context.Context) ([]Article, error) {
	rows, err := q.pool.Query(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE is_published = true ORDER BY display_order, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// GetArticleByID returns a single article regardless of publication state.
// Returns pgx.ErrNoRows if the article does not exist.
func (q *Queries) GetArticleByID(ctx context.Context, id int32) (Article, error) {
	row := q.pool.QueryRow(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	var a Article
	err := scanArticle(row, &a)
	return a, err
}

// CreateArticle inserts a new article and returns the created row.
func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (Article, error) {
	row := q.pool.QueryRow(ctx,
		`INSERT INTO articles (title, short_description, full_content, icon, display_order, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+articleColumns,
		arg.Title, arg.ShortDescription, arg.FullContent, arg.Icon, arg.DisplayOrder, arg.IsPublished)
	var a Article
	err := scanArticle(row, &a)
	return a, err
}

// UpdateArticle overwrites all columns of an existing article and returns the
// updated row. Returns pgx.ErrNoRows if the article does not exist.
func (q *Queries) UpdateArticle(ctx context.Context, arg UpdateArticleParams) (Article, error) {
	row := q.pool.QueryRow(ctx,
		`UPDATE articles
		 SET title = $2, short_description = $3, full_content = $4,
		     icon = $5, display_order = $6, is_published = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1
		 RETURNING `+articleColumns,
		arg.ID, arg.Title, arg.ShortDescription, arg.FullContent, arg.Icon, arg.DisplayOrder, arg.IsPublished)
	var a Article
	err := scanArticle(row, &a)
	return a, err
}

// DeleteArticle removes an article. Returns pgx.ErrNoRows if the article
// does not exist.
func (q *Queries) DeleteArticle(ctx context.Context, id int32) error {
	var deleted int32
	return q.pool.QueryRow(ctx,
		`DELETE FROM articles WHERE id = $1 RETURNING id`, id).Scan(&deleted)
}

// scanArticle reads one article row in articleColumns order.
func scanArticle(row pgx.Row, a *Article) error {
	return row.Scan(
		&a.ID,
		&a.Title,
		&a.ShortDescription,
		&a.FullContent,
		&a.Icon,
		&a.DisplayOrder,
		&a.IsPublished,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}
