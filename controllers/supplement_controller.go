package controllers

import (
	"errors"
	"net/http"

	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /api/supplements
func CreateSupplement(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.SupplementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sup, err := services.CreateSupplement(uid, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sup)
}

// GET /api/supplements
func ListSupplements(c *gin.Context) {
	uid := c.GetUint("userID")
	supps, err := services.ListSupplements(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, supps)
}

// GET /api/supplements/:id
func GetSupplement(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	sup, err := services.GetSupplement(uid, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "supplement not found"})
		return
	}
	c.JSON(http.StatusOK, sup)
}

// PATCH /api/supplements/:id
func UpdateSupplement(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch services.SupplementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sup, err := services.UpdateSupplement(uid, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "supplement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sup)
}

// DELETE /api/supplements/:id
func DeleteSupplement(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := services.DeleteSupplement(uid, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "supplement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
