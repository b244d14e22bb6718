package handlers

import (
	"net/http"

	"github.com/MaximSupreme/api-final-yatube/internal/authz"
	"github.com/MaximSupreme/api-final-yatube/internal/middleware"
	"github.com/MaximSupreme/api-final-yatube/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GroupHandler handles HTTP requests related to groups. Groups are
// read-only; the write routes exist only to answer with the engine's
// denial instead of a routing-level 404.
type GroupHandler struct {
	groupRepository repositories.GroupRepository
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository) *GroupHandler {
	return &GroupHandler{groupRepository: groupRepo}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.GET("/groups", h.GetGroups)
	g.GET("/groups/:id", h.GetGroup)
	g.POST("/groups", h.notAllowed(authz.ActionCreate))
	g.PUT("/groups/:id", h.notAllowed(authz.ActionUpdate))
	g.PATCH("/groups/:id", h.notAllowed(authz.ActionPartialUpdate))
	g.DELETE("/groups/:id", h.notAllowed(authz.ActionDelete))
}

// GetGroups retrieves all groups
func (h *GroupHandler) GetGroups(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionList, authz.KindGroup, nil); !d.Allowed {
		return deniedError(d)
	}

	groups, err := h.groupRepository.GetGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, groups)
}

// GetGroup retrieves a group by ID
func (h *GroupHandler) GetGroup(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)
	if d := authz.Decide(p, authz.ActionRetrieve, authz.KindGroup, nil); !d.Allowed {
		return deniedError(d)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid group ID")
	}

	group, err := h.groupRepository.GetGroupByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, group)
}

// notAllowed answers every mutating verb with the engine's decision
// for that action on the group kind.
func (h *GroupHandler) notAllowed(action authz.Action) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := middleware.PrincipalFromContext(c)
		return deniedError(authz.Decide(p, action, authz.KindGroup, nil))
	}
}
