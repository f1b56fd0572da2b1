package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/models"

	"github.com/gin-gonic/gin"
)

type reminderInput struct {
	Title     string   `json:"title" binding:"required"`
	Time      string   `json:"time" binding:"required"`
	Days      []string `json:"days"`
	Type      string   `json:"type"`
	RelatedID *uint    `json:"related_id"`
	Enabled   *bool    `json:"enabled"`
}

type reminderPatch struct {
	Title     *string   `json:"title"`
	Time      *string   `json:"time"`
	Days      *[]string `json:"days"`
	Type      *string   `json:"type"`
	RelatedID *uint     `json:"related_id"`
	Enabled   *bool     `json:"enabled"`
}

// POST /api/reminders
func CreateReminder(c *gin.Context) {
	uid := c.GetUint("userID")

	var input reminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	days, _ := json.Marshal(input.Days)
	rem := models.Reminder{
		UserID:    uid,
		Title:     input.Title,
		Time:      input.Time,
		Days:      days,
		Type:      input.Type,
		RelatedID: input.RelatedID,
		Enabled:   true,
	}
	if input.Enabled != nil {
		rem.Enabled = *input.Enabled
	}

	if err := config.DB.Create(&rem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rem)
}

// GET /api/reminders
func ListReminders(c *gin.Context) {
	uid := c.GetUint("userID")

	var rems []models.Reminder
	if err := config.DB.Where("user_id = ?", uid).Find(&rems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rems)
}

// GET /api/reminders/:id
func GetReminder(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var rem models.Reminder
	if err := config.DB.Where("id = ? AND user_id = ?", id, uid).First(&rem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
		return
	}
	c.JSON(http.StatusOK, rem)
}

// PATCH /api/reminders/:id
func UpdateReminder(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch reminderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rem models.Reminder
	if err := config.DB.Where("id = ? AND user_id = ?", id, uid).First(&rem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
		return
	}

	if patch.Title != nil {
		rem.Title = *patch.Title
	}
	if patch.Time != nil {
		rem.Time = *patch.Time
	}
	if patch.Days != nil {
		days, _ := json.Marshal(*patch.Days)
		rem.Days = days
	}
	if patch.Type != nil {
		rem.Type = *patch.Type
	}
	if patch.RelatedID != nil {
		rem.RelatedID = patch.RelatedID
	}
	if patch.Enabled != nil {
		rem.Enabled = *patch.Enabled
	}

	if err := config.DB.Save(&rem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rem)
}

// DELETE /api/reminders/:id
func DeleteReminder(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var rem models.Reminder
	if err := config.DB.Where("id = ? AND user_id = ?", id, uid).First(&rem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
		return
	}
	if err := config.DB.Unscoped().Delete(&rem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
