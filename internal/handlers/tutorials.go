package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atharvakonge/tradedesk/internal/tutorials"
)

// ListTutorials handles GET /api/tutorials?search=&category=&sort=&user=
// Each entry carries the user's bookmark state.
func (a *API) ListTutorials(c *gin.Context) {
	q := tutorials.DefaultQuery()
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be one of None, Title, Category"})
		return
	}

	results := a.bookmarks.Mark(c.Query("user"), tutorials.Filter(a.catalog, q))
	c.JSON(http.StatusOK, gin.H{
		"tutorials":  results,
		"count":      len(results),
		"categories": tutorials.Categories,
		"query":      q,
	})
}

// ListBookmarks handles GET /api/tutorials/bookmarks/:user
func (a *API) ListBookmarks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bookmarks": a.bookmarks.List(c.Param("user"))})
}

// ToggleBookmark handles POST /api/tutorials/bookmarks/:user/:id
func (a *API) ToggleBookmark(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tutorial id"})
		return
	}

	user := c.Param("user")
	bookmarked, err := a.bookmarks.Toggle(user, id)
	if errors.Is(err, tutorials.ErrUnknownTutorial) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tutorial not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         id,
		"bookmarked": bookmarked,
		"bookmarks":  a.bookmarks.List(user),
	})
}
