package controllers

import (
	"errors"
	"net/http"

	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /api/medications
func CreateMedication(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.MedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	med, err := services.CreateMedication(uid, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, med)
}

// GET /api/medications
func ListMedications(c *gin.Context) {
	uid := c.GetUint("userID")
	meds, err := services.ListMedications(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meds)
}

// GET /api/medications/:id
func GetMedication(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	med, err := services.GetMedication(uid, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
		return
	}
	c.JSON(http.StatusOK, med)
}

// PATCH /api/medications/:id
func UpdateMedication(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch services.MedicationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	med, err := services.UpdateMedication(uid, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, med)
}

// DELETE /api/medications/:id
func DeleteMedication(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := services.DeleteMedication(uid, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
