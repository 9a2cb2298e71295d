package handler

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/tasktracker/internal/api/auth"
	"github.com/jon4hz/tasktracker/internal/api/models"
	"github.com/jon4hz/tasktracker/internal/engine"
	"github.com/jon4hz/tasktracker/web/templates/pages"
)

// AdminPanel shows every registered user. Non-admins are sent back home.
func (h *Handler) AdminPanel(c *gin.Context, user *models.Identity) {
	users, err := h.engine.ListUsers(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, engine.ErrForbidden) {
			h.redirect(c, "/", models.Fail(msgAdminsOnly))
			return
		}
		log.Error("Failed to list users", "error", err)
		h.redirect(c, "/", models.Fail(msgSomethingWentWrong))
		return
	}
	results := auth.PopResults(c)

	c.Header("Content-Type", "text/html")
	if err := pages.Admin(user, models.ToUserItems(users), results).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render admin dashboard", "error", err)
	}
}
