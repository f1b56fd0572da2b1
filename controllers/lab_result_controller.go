package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LabResultController struct {
	Labs *services.LabResultService
}

func NewLabResultController(labs *services.LabResultService) *LabResultController {
	return &LabResultController{Labs: labs}
}

// POST /api/lab-results/upload (multipart, field "file")
func (lc *LabResultController) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file content"})
		return
	}

	uid := c.GetUint("userID")
	lr, err := lc.Labs.Upload(uid, file.Filename, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, lr)
}

// GET /api/lab-results
func (lc *LabResultController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	results, err := lc.Labs.List(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// GET /api/lab-results/:id
func (lc *LabResultController) Get(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	lr, err := lc.Labs.Get(uid, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lab result not found"})
		return
	}
	c.JSON(http.StatusOK, lr)
}

// DELETE /api/lab-results/:id
func (lc *LabResultController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := lc.Labs.Delete(uid, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lab result not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/health-markers
func (lc *LabResultController) ListMarkers(c *gin.Context) {
	uid := c.GetUint("userID")
	markers, err := lc.Labs.ListMarkers(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, markers)
}

// GET /api/recommendations
func (lc *LabResultController) ListRecommendations(c *gin.Context) {
	uid := c.GetUint("userID")
	recs, err := lc.Labs.ListRecommendations(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
