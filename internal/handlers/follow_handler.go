package handlers

import (
	"net/http"

	"github.com/MaximSupreme/api-final-yatube/internal/authz"
	"github.com/MaximSupreme/api-final-yatube/internal/middleware"
	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"github.com/MaximSupreme/api-final-yatube/internal/relation"
	"github.com/MaximSupreme/api-final-yatube/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles HTTP requests on the follow relation. The
// relation is append-only: list and create, nothing else.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	validator        *relation.Validator
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, v *relation.Validator) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		validator:        v,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/follow", h.GetFollows)
	g.POST("/follow", h.CreateFollow)
	g.GET("/follow/:id", h.notAllowed(authz.ActionRetrieve))
	g.PUT("/follow/:id", h.notAllowed(authz.ActionUpdate))
	g.PATCH("/follow/:id", h.notAllowed(authz.ActionPartialUpdate))
	g.DELETE("/follow/:id", h.notAllowed(authz.ActionDelete))
}

// GetFollows lists the principal's outgoing follow edges, optionally
// narrowed by a search term on the followed username
func (h *FollowHandler) GetFollows(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionList, authz.KindFollow, nil); !d.Allowed {
		return deniedError(d)
	}

	follows, err := h.followRepository.GetFollowsByUserID(p.UserID, c.QueryParam("search"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.FollowResponse, 0, len(follows))
	for i := range follows {
		results = append(results, models.NewFollowResponse(&follows[i]))
	}
	return c.JSON(http.StatusOK, results)
}

// CreateFollow creates a follow edge from the principal to the user
// named in the body. A "user" field in the body is ignored.
func (h *FollowHandler) CreateFollow(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionCreate, authz.KindFollow, nil); !d.Allowed {
		return deniedError(d)
	}

	var req models.CreateFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	following, err := h.userRepository.GetUserByUsername(req.Following)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No such user: "+req.Following)
	}

	if err := h.validator.ValidateFollowCreate(p.UserID, following.ID); err != nil {
		switch err {
		case relation.ErrSelfFollow, repositories.ErrDuplicateFollow:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	follow := &models.Follow{
		UserID:      p.UserID, // forced to the principal
		FollowingID: following.ID,
	}

	if err := h.followRepository.CreateFollow(follow); err != nil {
		// Two racing creates can both pass the validator; the unique
		// index catches the loser here.
		if err == repositories.ErrDuplicateFollow {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, models.NewFollowResponse(follow))
}

// notAllowed answers the undefined verbs on the follow relation with
// the engine's decision: 401 for anonymous, 405 otherwise.
func (h *FollowHandler) notAllowed(action authz.Action) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := middleware.PrincipalFromContext(c)
		return deniedError(authz.Decide(p, action, authz.KindFollow, nil))
	}
}
