package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/tasktracker/internal/api/auth"
	"github.com/jon4hz/tasktracker/internal/api/models"
	"github.com/jon4hz/tasktracker/internal/credential"
	"github.com/jon4hz/tasktracker/internal/database"
	"github.com/jon4hz/tasktracker/internal/engine"
	"github.com/jon4hz/tasktracker/web/templates/pages"
	"github.com/samber/lo"
)

const (
	msgRegistered         = "Registered successfully! Please log in."
	msgUsernameTaken      = "Username already exists!"
	msgMissingUsername    = "Username is required."
	msgInvalidCredentials = "Invalid username or password."
	msgTitleRequired      = "Title is required."
	msgTaskNotFound       = "Task not found."
	msgCannotUpdate       = "You can't update this task."
	msgCannotDelete       = "You can't delete this task."
	msgAdminsOnly         = "Access denied. Admins only!"
	msgSomethingWentWrong = "Something went wrong."
	msgSessionFailed      = "Could not start session."
)

type Handler struct {
	engine      *engine.Engine
	credentials *credential.Store
	auth        *auth.Provider
}

func New(eng *engine.Engine, credentials *credential.Store, authProvider *auth.Provider) *Handler {
	return &Handler{
		engine:      eng,
		credentials: credentials,
		auth:        authProvider,
	}
}

func (h *Handler) Home(c *gin.Context) {
	user, err := h.auth.CurrentIdentity(c)
	if err != nil {
		// anonymous view is still fine
		log.Error("Failed to resolve identity", "error", err)
	}
	results := auth.PopResults(c)

	c.Header("Content-Type", "text/html")
	if err := pages.Home(user, results).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render home page", "error", err)
	}
}

func (h *Handler) RegisterPage(c *gin.Context) {
	results := auth.PopResults(c)

	c.Header("Content-Type", "text/html")
	if err := pages.Register(results).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render register page", "error", err)
	}
}

func (h *Handler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.credentials.Register(c.Request.Context(), username, password)
	switch {
	case err == nil:
		h.redirect(c, "/login", models.Ok(msgRegistered))
	case errors.Is(err, database.ErrDuplicateUsername):
		h.redirect(c, "/register", models.Fail(msgUsernameTaken))
	case errors.Is(err, credential.ErrMissingUsername):
		h.redirect(c, "/register", models.Fail(msgMissingUsername))
	default:
		log.Error("Failed to register user", "error", err)
		h.redirect(c, "/register", models.Fail(msgSomethingWentWrong))
	}
}

func (h *Handler) LoginPage(c *gin.Context) {
	h.renderLogin(c, "", auth.PopResults(c))
}

func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	userID, err := h.credentials.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if !errors.Is(err, credential.ErrAuthFailure) {
			log.Error("Failed to authenticate user", "error", err)
			h.renderLogin(c, username, []models.Result{models.Fail(msgSomethingWentWrong)})
			return
		}
		log.Info("Failed login attempt", "username", username)
		h.renderLogin(c, username, []models.Result{models.Fail(msgInvalidCredentials)})
		return
	}

	if err := h.auth.SignIn(c, userID); err != nil {
		log.Error("Failed to save session", "error", err)
		h.renderLogin(c, username, []models.Result{models.Fail(msgSessionFailed)})
		return
	}
	log.Info("User logged in", "userID", userID)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) renderLogin(c *gin.Context, username string, results []models.Result) {
	c.Header("Content-Type", "text/html")
	if err := pages.Login(username, results).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render login page", "error", err)
	}
}

func (h *Handler) Logout(c *gin.Context, user *models.Identity) {
	if err := h.auth.SignOut(c); err != nil {
		if err := c.AbortWithError(http.StatusInternalServerError, err); err != nil {
			log.Error("Failed to abort with error", "error", err)
		}
		return
	}
	log.Info("User logged out", "userID", user.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Tasks(c *gin.Context, user *models.Identity) {
	tasks, err := h.engine.ListTasks(c.Request.Context(), user)
	if err != nil {
		// Log error and fall back to empty data
		log.Error("Failed to list tasks", "error", err)
		if err := auth.AddResult(c, models.Fail(msgSomethingWentWrong)); err != nil {
			log.Error("Failed to save session", "error", err)
		}
		tasks = []database.Task{}
	}
	results := auth.PopResults(c)

	c.Header("Content-Type", "text/html")
	if err := pages.Tasks(user, models.ToTaskItems(tasks), results).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render tasks page", "error", err)
	}
}

func (h *Handler) AddTask(c *gin.Context, user *models.Identity) {
	title := c.PostForm("title")
	description := c.DefaultPostForm("description", "")

	_, err := h.engine.AddTask(c.Request.Context(), user, title, lo.ToPtr(description))
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/tasks")
	case errors.Is(err, engine.ErrTitleRequired):
		h.redirect(c, "/tasks", models.Fail(msgTitleRequired))
	default:
		log.Error("Failed to add task", "error", err)
		h.redirect(c, "/tasks", models.Fail(msgSomethingWentWrong))
	}
}

func (h *Handler) UpdateTask(c *gin.Context, user *models.Identity) {
	taskID, err := parseUintParam(c.Param("id"))
	if err != nil {
		h.redirect(c, "/tasks", models.Fail(msgTaskNotFound))
		return
	}
	status := c.DefaultQuery("status", database.StatusPending)

	err = h.engine.UpdateTaskStatus(c.Request.Context(), user, taskID, status)
	h.redirectTaskResult(c, err, msgCannotUpdate)
}

func (h *Handler) DeleteTask(c *gin.Context, user *models.Identity) {
	taskID, err := parseUintParam(c.Param("id"))
	if err != nil {
		h.redirect(c, "/tasks", models.Fail(msgTaskNotFound))
		return
	}

	err = h.engine.DeleteTask(c.Request.Context(), user, taskID)
	h.redirectTaskResult(c, err, msgCannotDelete)
}

func (h *Handler) redirectTaskResult(c *gin.Context, err error, forbidden string) {
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/tasks")
	case errors.Is(err, database.ErrNotFound):
		h.redirect(c, "/tasks", models.Fail(msgTaskNotFound))
	case errors.Is(err, engine.ErrForbidden):
		h.redirect(c, "/tasks", models.Fail(forbidden))
	default:
		log.Error("Failed to modify task", "error", err)
		h.redirect(c, "/tasks", models.Fail(msgSomethingWentWrong))
	}
}

// Healthz reports that the server is up.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// redirect flashes result and sends the client to location.
func (h *Handler) redirect(c *gin.Context, location string, result models.Result) {
	if err := auth.AddResult(c, result); err != nil {
		log.Error("Failed to save session", "error", err)
	}
	c.Redirect(http.StatusFound, location)
}

func parseUintParam(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.ToUint(id)
}
