package handlers

import (
	"net/http"
	"time"

	"github.com/MaximSupreme/api-final-yatube/internal/authz"
	"github.com/MaximSupreme/api-final-yatube/internal/middleware"
	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"github.com/MaximSupreme/api-final-yatube/internal/relation"
	"github.com/MaximSupreme/api-final-yatube/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments. Every
// route is nested under a concrete post; the parent is resolved before
// any authorization check runs.
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	validator         *relation.Validator
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, v *relation.Validator) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		validator:         v,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetComments)
	g.GET("/posts/:post_id/comments/:id", h.GetComment)
	g.PUT("/posts/:post_id/comments/:id", h.UpdateComment)
	g.PATCH("/posts/:post_id/comments/:id", h.PartialUpdateComment)
	g.DELETE("/posts/:post_id/comments/:id", h.DeleteComment)
}

// resolveParent resolves the :post_id path segment to an existing post
func (h *CommentHandler) resolveParent(c echo.Context) (*models.Post, error) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	post, err := h.validator.ResolveCommentParent(postID)
	if err != nil {
		if err == relation.ErrParentNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return post, nil
}

// getScopedComment fetches the :id comment and checks it belongs to
// the resolved parent. A comment of another post is a 404, not a leak.
func (h *CommentHandler) getScopedComment(c echo.Context, parent *models.Post) (*models.Comment, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}
	comment, err := h.commentRepository.GetCommentByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.PostID != parent.ID {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	return comment, nil
}

// CreateComment creates a new comment under the resolved parent post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	parent, err := h.resolveParent(c)
	if err != nil {
		return err
	}

	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionCreate, authz.KindComment, nil); !d.Allowed {
		return deniedError(d)
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Author and parent come from the request context, never the body.
	comment := &models.Comment{
		AuthorID: p.UserID,
		PostID:   parent.ID,
		Text:     req.Text,
		Created:  time.Now(),
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, models.NewCommentResponse(comment))
}

// GetComments retrieves all comments of the resolved parent post
func (h *CommentHandler) GetComments(c echo.Context) error {
	parent, err := h.resolveParent(c)
	if err != nil {
		return err
	}

	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionList, authz.KindComment, nil); !d.Allowed {
		return deniedError(d)
	}

	comments, err := h.commentRepository.GetCommentsByPostID(parent.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, models.NewCommentResponse(&comments[i]))
	}
	return c.JSON(http.StatusOK, results)
}

// GetComment retrieves one comment of the resolved parent post
func (h *CommentHandler) GetComment(c echo.Context) error {
	parent, err := h.resolveParent(c)
	if err != nil {
		return err
	}

	comment, err := h.getScopedComment(c, parent)
	if err != nil {
		return err
	}

	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionRetrieve, authz.KindComment, &authz.Target{AuthorID: comment.AuthorID}); !d.Allowed {
		return deniedError(d)
	}

	return c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

// UpdateComment replaces an existing comment; author-only
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	return h.updateComment(c, authz.ActionUpdate)
}

// PartialUpdateComment updates an existing comment; author-only
func (h *CommentHandler) PartialUpdateComment(c echo.Context) error {
	return h.updateComment(c, authz.ActionPartialUpdate)
}

func (h *CommentHandler) updateComment(c echo.Context, action authz.Action) error {
	parent, err := h.resolveParent(c)
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.getScopedComment(c, parent)
	if err != nil {
		return err
	}

	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, action, authz.KindComment, &authz.Target{AuthorID: comment.AuthorID}); !d.Allowed {
		return deniedError(d)
	}

	comment.Text = req.Text

	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

// DeleteComment deletes a comment; author-only
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	parent, err := h.resolveParent(c)
	if err != nil {
		return err
	}

	comment, err := h.getScopedComment(c, parent)
	if err != nil {
		return err
	}

	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionDelete, authz.KindComment, &authz.Target{AuthorID: comment.AuthorID}); !d.Allowed {
		return deniedError(d)
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
