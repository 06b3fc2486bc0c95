package function

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/metrics"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/storage"
)

// ArticlesHandler dispatches CRUD events for the articles resource.
// The X-Admin-Key header is advertised in CORS but not checked, matching the
// original handler.
type ArticlesHandler struct {
	queries storage.Querier
	log     zerolog.Logger
}

// NewArticlesHandler creates an ArticlesHandler backed by the given querier.
func NewArticlesHandler(queries storage.Querier, log zerolog.Logger) *ArticlesHandler {
	return &ArticlesHandler{queries: queries, log: log}
}

// articleRequest is the JSON body for POST and PUT. Pointer fields
// distinguish "absent" from zero values so POST defaults can be applied.
type articleRequest struct {
	ID               int32  `json:"id,omitempty"`
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	FullContent      string `json:"full_content"`
	Icon             string `json:"icon"`
	DisplayOrder     int32  `json:"display_order"`
	IsPublished      *bool  `json:"is_published"`
}

// articleResponse is the JSON shape of one article row.
type articleResponse struct {
	ID               int32     `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	FullContent      string    `json:"full_content"`
	Icon             string    `json:"icon"`
	DisplayOrder     int32     `json:"display_order"`
	IsPublished      bool      `json:"is_published"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toArticleResponse(a storage.Article) articleResponse {
	return articleResponse{
		ID:               a.ID,
		Title:            a.Title,
		ShortDescription: a.ShortDescription,
		FullContent:      a.FullContent,
		Icon:             a.Icon,
		DisplayOrder:     a.DisplayOrder,
		IsPublished:      a.IsPublished,
		CreatedAt:        timestampToTime(a.CreatedAt),
		UpdatedAt:        timestampToTime(a.UpdatedAt),
	}
}

// timestampToTime converts a pgtype.Timestamptz to time.Time.
// Returns zero time if the timestamp is not valid.
func timestampToTime(ts pgtype.Timestamptz) time.Time {
	if ts.Valid {
		return ts.Time
	}
	return time.Time{}
}

// Handle processes one articles event.
func (h *ArticlesHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	respond := func(resp events.APIGatewayProxyResponse) (events.APIGatewayProxyResponse, error) {
		metrics.ArticlesRequestsTotal.WithLabelValues(req.HTTPMethod, strconv.Itoa(resp.StatusCode)).Inc()
		return resp, nil
	}

	switch req.HTTPMethod {
	case "OPTIONS":
		return respond(preflightResponse("GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-Admin-Key"))
	case "GET":
		return respond(h.get(ctx, req))
	case "POST":
		return respond(h.create(ctx, req))
	case "PUT":
		return respond(h.update(ctx, req))
	case "DELETE":
		return respond(h.delete(ctx, req))
	default:
		return respond(errorResponse(405, "Method not allowed"))
	}
}

func (h *ArticlesHandler) get(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	idParam := req.QueryStringParameters["id"]
	if idParam == "" {
		articles, err := h.queries.ListPublishedArticles(ctx)
		if err != nil {
			h.log.Error().Err(err).Msg("list articles failed")
			return errorResponse(500, "Internal server error")
		}
		out := make([]articleResponse, 0, len(articles))
		for _, a := range articles {
			out = append(out, toArticleResponse(a))
		}
		return jsonResponse(200, out)
	}

	id, err := parseArticleID(idParam)
	if err != nil {
		return errorResponse(400, "Invalid article id")
	}

	article, err := h.queries.GetArticleByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return errorResponse(404, "Article not found")
	}
	if err != nil {
		h.log.Error().Err(err).Int32("id", id).Msg("get article failed")
		return errorResponse(500, "Internal server error")
	}
	return jsonResponse(200, toArticleResponse(article))
}

func (h *ArticlesHandler) create(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var body articleRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, "Invalid request body")
	}

	// Defaults from the original handler.
	icon := body.Icon
	if icon == "" {
		icon = "FileText"
	}
	isPublished := true
	if body.IsPublished != nil {
		isPublished = *body.IsPublished
	}

	article, err := h.queries.CreateArticle(ctx, storage.CreateArticleParams{
		Title:            body.Title,
		ShortDescription: body.ShortDescription,
		FullContent:      body.FullContent,
		Icon:             icon,
		DisplayOrder:     body.DisplayOrder,
		IsPublished:      isPublished,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create article failed")
		return errorResponse(500, "Internal server error")
	}
	return jsonResponse(201, toArticleResponse(article))
}

func (h *ArticlesHandler) update(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var body articleRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, "Invalid request body")
	}
	if body.ID == 0 {
		return errorResponse(400, "Article ID required")
	}

	isPublished := false
	if body.IsPublished != nil {
		isPublished = *body.IsPublished
	}

	article, err := h.queries.UpdateArticle(ctx, storage.UpdateArticleParams{
		ID:               body.ID,
		Title:            body.Title,
		ShortDescription: body.ShortDescription,
		FullContent:      body.FullContent,
		Icon:             body.Icon,
		DisplayOrder:     body.DisplayOrder,
		IsPublished:      isPublished,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return errorResponse(404, "Article not found")
	}
	if err != nil {
		h.log.Error().Err(err).Int32("id", body.ID).Msg("update article failed")
		return errorResponse(500, "Internal server error")
	}
	return jsonResponse(200, toArticleResponse(article))
}

func (h *ArticlesHandler) delete(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	idParam := req.QueryStringParameters["id"]
	if idParam == "" {
		return errorResponse(400, "Article ID required")
	}

	id, err := parseArticleID(idParam)
	if err != nil {
		return errorResponse(400, "Invalid article id")
	}

	err = h.queries.DeleteArticle(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return errorResponse(404, "Article not found")
	}
	if err != nil {
		h.log.Error().Err(err).Int32("id", id).Msg("delete article failed")
		return errorResponse(500, "Internal server error")
	}

	// Echo the raw query-string value, as the original handler did.
	return jsonResponse(200, map[string]any{"success": true, "id": idParam})
}

func parseArticleID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
