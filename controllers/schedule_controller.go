package controllers

import (
	"net/http"

	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/gin-gonic/gin"
)

// GET /api/schedule/warnings
func GetScheduleWarnings(c *gin.Context) {
	uid := c.GetUint("userID")

	warnings, err := services.ScheduleWarnings(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"warnings": warnings})
}
