package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atharvakonge/tradedesk/internal/models"
	"github.com/atharvakonge/tradedesk/internal/profile"
)

// Messages shown to the user as-is.
const (
	msgInvalidAmount = "Please enter a valid amount."
	msgProfileSaved  = "Profile saved!"
)

// CreateProfile handles POST /api/profiles
func (a *API) CreateProfile(c *gin.Context) {
	var req models.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := a.profiles.Create(c.Request.Context(), req.Username, req.DisplayName)
	if err != nil {
		a.profileError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetProfile handles GET /api/profiles/:username
func (a *API) GetProfile(c *gin.Context) {
	view, err := a.profiles.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		a.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SaveProfile handles PUT /api/profiles/:username
func (a *API) SaveProfile(c *gin.Context) {
	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := a.profiles.Save(c.Request.Context(), c.Param("username"), upd)
	if err != nil {
		a.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": msgProfileSaved,
		"profile": p,
	})
}

// DeleteProfile handles DELETE /api/profiles/:username
func (a *API) DeleteProfile(c *gin.Context) {
	if err := a.profiles.Delete(c.Request.Context(), c.Param("username")); err != nil {
		a.profileError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFunds handles POST /api/profiles/:username/funds
func (a *API) AddFunds(c *gin.Context) {
	var req models.FundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidAmount})
		return
	}

	res, err := a.profiles.AddFunds(c.Request.Context(), c.Param("username"), req.Amount)
	if err != nil {
		a.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RecordTrade handles POST /api/profiles/:username/trades
func (a *API) RecordTrade(c *gin.Context) {
	var req models.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := a.profiles.RecordTrade(c.Request.Context(), c.Param("username"), req.Record())
	if err != nil {
		a.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetStats handles GET /api/profiles/:username/stats
func (a *API) GetStats(c *gin.Context) {
	s, err := a.profiles.Stats(c.Request.Context(), c.Param("username"))
	if err != nil {
		a.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ExportHistory handles GET /api/profiles/:username/export
func (a *API) ExportHistory(c *gin.Context) {
	data, err := a.profiles.ExportHistory(c.Request.Context(), c.Param("username"))
	if err != nil {
		a.profileError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+profile.ExportFilename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// profileError maps service errors to responses.
func (a *API) profileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, profile.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidAmount})
	case errors.Is(err, profile.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
	case errors.Is(err, profile.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, profile.ErrProfileExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
	default:
		a.logger.Error("Profile request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}
