package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/NasiChan/lab2life-webapp/models"
	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PillDoseController struct {
	Doses *services.DoseService
}

func NewPillDoseController(doses *services.DoseService) *PillDoseController {
	return &PillDoseController{Doses: doses}
}

// GET /api/pill-doses?date=YYYY-MM-DD
func (pc *PillDoseController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'date' query param"})
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	doses, err := pc.Doses.ListByDate(uid, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doses)
}

type doseCreateInput struct {
	PillType           string `json:"pill_type" binding:"required"`
	PillID             uint   `json:"pill_id" binding:"required"`
	ScheduledDate      string `json:"scheduled_date" binding:"required"`
	ScheduledTimeBlock string `json:"scheduled_time_block"`
	Status             string `json:"status"`
}

// POST /api/pill-doses
func (pc *PillDoseController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var input doseCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01-02", input.ScheduledDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduled_date. Use YYYY-MM-DD"})
		return
	}

	dose := models.PillDose{
		UserID:             uid,
		PillType:           input.PillType,
		PillID:             input.PillID,
		ScheduledDate:      input.ScheduledDate,
		ScheduledTimeBlock: input.ScheduledTimeBlock,
		Status:             input.Status,
	}
	if err := pc.Doses.Create(&dose); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dose)
}

// PATCH /api/pill-doses/:id
func (pc *PillDoseController) Update(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch services.DoseUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dose, err := pc.Doses.Update(uid, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dose not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dose)
}

type generateInput struct {
	Date string `json:"date" binding:"required"`
}

// POST /api/pill-doses/generate
func (pc *PillDoseController) Generate(c *gin.Context) {
	uid := c.GetUint("userID")

	var input generateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	doses, err := pc.Doses.Generate(uid, input.Date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doses)
}
