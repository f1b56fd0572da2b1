package controllers

import (
	"net/http"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/models"

	"github.com/gin-gonic/gin"
)

type pillStackInput struct {
	Name          string `json:"name" binding:"required"`
	TimeBlock     string `json:"time_block"`
	ScheduledTime string `json:"scheduled_time"`
	Description   string `json:"description"`
}

type pillStackPatch struct {
	Name          *string `json:"name"`
	TimeBlock     *string `json:"time_block"`
	ScheduledTime *string `json:"scheduled_time"`
	Description   *string `json:"description"`
}

// POST /api/pill-stacks
func CreatePillStack(c *gin.Context) {
	uid := c.GetUint("userID")

	var input pillStackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stack := models.PillStack{
		UserID:        uid,
		Name:          input.Name,
		TimeBlock:     input.TimeBlock,
		ScheduledTime: input.ScheduledTime,
		Description:   input.Description,
	}
	if stack.TimeBlock == "" {
		stack.TimeBlock = models.TimeBlockMorning
	}
	if err := config.DB.Create(&stack).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, stack)
}

// GET /api/pill-stacks
func ListPillStacks(c *gin.Context) {
	uid := c.GetUint("userID")

	var stacks []models.PillStack
	if err := config.DB.Where("user_id = ?", uid).Find(&stacks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stacks)
}

// GET /api/pill-stacks/:id
func GetPillStack(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var stack models.PillStack
	if err := config.DB.Where("id = ? AND user_id = ?", id, uid).First(&stack).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pill stack not found"})
		return
	}
	c.JSON(http.StatusOK, stack)
}

// PATCH /api/pill-stacks/:id
func UpdatePillStack(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch pillStackPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var stack models.PillStack
	if err := config.DB.Where("id = ? AND user_id = ?", id, uid).First(&stack).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pill stack not found"})
		return
	}

	if patch.Name != nil {
		stack.Name = *patch.Name
	}
	if patch.TimeBlock != nil {
		stack.TimeBlock = *patch.TimeBlock
	}
	if patch.ScheduledTime != nil {
		stack.ScheduledTime = *patch.ScheduledTime
	}
	if patch.Description != nil {
		stack.Description = *patch.Description
	}

	if err := config.DB.Save(&stack).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stack)
}

// DELETE /api/pill-stacks/:id
func DeletePillStack(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var stack models.PillStack
	if err := config.DB.Where("id = ? AND user_id = ?", id, uid).First(&stack).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pill stack not found"})
		return
	}
	if err := config.DB.Unscoped().Delete(&stack).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
