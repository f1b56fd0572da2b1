package controllers

import (
	"net/http"

	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/gin-gonic/gin"
)

// GET /api/me
func GetMe(c *gin.Context) {
	uid := c.GetUint("userID")

	user, err := services.GetUser(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.ProfileView(user))
}

// PATCH /api/me/health-profile
func UpdateHealthProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var patch services.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.UpdateHealthProfile(uid, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.ProfileView(user))
}

// POST /api/me/health-profile/skip
func SkipHealthProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	user, err := services.SkipHealthProfile(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.ProfileView(user))
}
