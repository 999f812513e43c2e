package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devhardik21/RootStudy/internal/models"
)

// GroupLister is the slice of the store the group routes need.
type GroupLister interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
}

type GroupHandler struct {
	store GroupLister
}

func NewGroupHandler(store GroupLister) *GroupHandler {
	return &GroupHandler{store: store}
}

// List handles GET /api/groups. A store failure produces an explicit 500
// response rather than being swallowed.
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.store.ListGroups(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list groups.", "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.GroupsResponse{
		Message: "List of all the groups",
		Groups:  groups,
	})
}
