package auth

import (
	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/tasktracker/internal/api/models"
)

// AddResult stores a result in the session so it is shown on the next rendered page.
func AddResult(c *gin.Context, result models.Result) error {
	session := sessions.Default(c)
	session.AddFlash(result)
	return session.Save()
}

// PopResults returns and removes all pending results of the session.
// It has to run before the response body is written.
func PopResults(c *gin.Context) []models.Result {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}

	results := make([]models.Result, 0, len(flashes))
	for _, f := range flashes {
		if r, ok := f.(models.Result); ok {
			results = append(results, r)
		}
	}
	return results
}
