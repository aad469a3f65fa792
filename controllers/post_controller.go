package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/store"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/utils"
)

// PostController serves the list and create operations of the post store.
type PostController struct {
	store    store.PostStore
	sanitize bool
	created  prometheus.Counter
}

// NewPostController creates a PostController. When sanitize is set, submitted
// markup is cleaned before it reaches the store. created may be nil.
func NewPostController(s store.PostStore, sanitize bool, created prometheus.Counter) *PostController {
	return &PostController{store: s, sanitize: sanitize, created: created}
}

type createPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ListPosts returns every post as a bare JSON array, in insertion order.
func (p *PostController) ListPosts(ctx *gin.Context) {
	posts, err := p.store.List(ctx.Request.Context())
	if err != nil {
		utils.Logger.Error("list posts failed", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list posts")
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

// CreatePost appends a post and answers 201 with the created record only.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req createPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	title, body := req.Title, req.Body
	if p.sanitize {
		title = utils.SanitizeTitle(title)
		body = utils.Sanitize(body)
	}

	post, err := p.store.Create(ctx.Request.Context(), title, body)
	if err != nil {
		utils.Logger.Error("create post failed", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}
	if p.created != nil {
		p.created.Inc()
	}
	utils.Logger.Info("post created", zap.Int("id", post.ID), zap.String("request_id", ctx.GetString(utils.RequestIDKey)))
	ctx.JSON(http.StatusCreated, post)
}
