package controllers

import (
	"net/http"

	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/gin-gonic/gin"
)

type InteractionController struct {
	Interactions *services.InteractionService
}

func NewInteractionController(is *services.InteractionService) *InteractionController {
	return &InteractionController{Interactions: is}
}

// GET /api/interactions
func (ic *InteractionController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	out, err := ic.Interactions.List(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/interactions/check
func (ic *InteractionController) Check(c *gin.Context) {
	uid := c.GetUint("userID")

	out, err := ic.Interactions.Check(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
