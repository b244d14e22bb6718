package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MaximSupreme/api-final-yatube/internal/authz"
	"github.com/MaximSupreme/api-final-yatube/internal/middleware"
	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"github.com/MaximSupreme/api-final-yatube/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository  repositories.PostRepository
	groupRepository repositories.GroupRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, groupRepo repositories.GroupRepository) *PostHandler {
	return &PostHandler{
		postRepository:  postRepo,
		groupRepository: groupRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.PATCH("/posts/:id", h.PartialUpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// paginatedResponse mirrors limit/offset pagination envelopes: the
// envelope is used only when the client asks for a window.
type paginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// CreatePost creates a new post authored by the principal
func (h *PostHandler) CreatePost(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionCreate, authz.KindPost, nil); !d.Allowed {
		return deniedError(d)
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Group != nil {
		if _, err := h.groupRepository.GetGroupByID(*req.Group); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown group")
		}
	}

	// Author is always the principal, regardless of the request body.
	post := &models.Post{
		AuthorID: p.UserID,
		Text:     req.Text,
		Image:    req.Image,
		GroupID:  req.Group,
		PubDate:  time.Now(),
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, models.NewPostResponse(post))
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if d := authz.Decide(p, authz.ActionRetrieve, authz.KindPost, &authz.Target{AuthorID: post.AuthorID}); !d.Allowed {
		return deniedError(d)
	}

	return c.JSON(http.StatusOK, models.NewPostResponse(post))
}

// GetPosts retrieves posts, paginated when a limit is given
func (h *PostHandler) GetPosts(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionList, authz.KindPost, nil); !d.Allowed {
		return deniedError(d)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	posts, err := h.postRepository.GetPosts(limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		results = append(results, models.NewPostResponse(&posts[i]))
	}

	if c.QueryParam("limit") == "" {
		return c.JSON(http.StatusOK, results)
	}

	count, err := h.postRepository.CountPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, paginatedResponse{Count: count, Results: results})
}

// UpdatePost replaces an existing post; author-only
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.CreatePostRequest // full update: same required fields as create
	return h.updatePost(c, authz.ActionUpdate, &req)
}

// PartialUpdatePost updates the given fields of an existing post; author-only
func (h *PostHandler) PartialUpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	return h.updatePost(c, authz.ActionPartialUpdate, &req)
}

func (h *PostHandler) updatePost(c echo.Context, action authz.Action, req interface{}) error {
	p := middleware.PrincipalFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	existingPost, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Only the author may change a post.
	if d := authz.Decide(p, action, authz.KindPost, &authz.Target{AuthorID: existingPost.AuthorID}); !d.Allowed {
		return deniedError(d)
	}

	switch r := req.(type) {
	case *models.CreatePostRequest:
		existingPost.Text = r.Text
		existingPost.Image = r.Image
		existingPost.GroupID = r.Group
	case *models.UpdatePostRequest:
		if r.Text != "" {
			existingPost.Text = r.Text
		}
		if r.Image != "" {
			existingPost.Image = r.Image
		}
		if r.Group != nil {
			existingPost.GroupID = r.Group
		}
	}

	if existingPost.GroupID != nil {
		if _, err := h.groupRepository.GetGroupByID(*existingPost.GroupID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown group")
		}
	}

	if err := h.postRepository.UpdatePost(existingPost); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, models.NewPostResponse(existingPost))
}

// DeletePost deletes a post; author-only
func (h *PostHandler) DeletePost(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	existingPost, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if d := authz.Decide(p, authz.ActionDelete, authz.KindPost, &authz.Target{AuthorID: existingPost.AuthorID}); !d.Allowed {
		return deniedError(d)
	}

	if err := h.postRepository.DeletePost(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
