package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tipfit/internal/models"
	"tipfit/internal/pdf"
	"tipfit/internal/services"
)

type TipHandler struct {
	tips     services.TipService
	profiles services.ProfileService
	reports  pdf.Generator
}

func NewTipHandler(tips services.TipService, profiles services.ProfileService, reports pdf.Generator) *TipHandler {
	return &TipHandler{tips: tips, profiles: profiles, reports: reports}
}

// @Summary      Consejo del día
// @Description  Devuelve el consejo de hoy, generando uno nuevo si aún no existe
// @Tags         Tips
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Tip
// @Failure      404  {object}  map[string]string
// @Router       /tips/daily [get]
func (h *TipHandler) Daily(c *gin.Context) {
	userID, ok := getUserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
		return
	}

	tip, err := h.tips.GetDaily(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

// @Summary      Generar consejo
// @Description  Genera un consejo nuevo con el perfil enviado (o el guardado)
// @Tags         Tips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile  body      models.Profile  false  "Perfil a usar"
// @Success      200      {object}  models.Tip
// @Failure      400      {object}  map[string]string
// @Router       /tips/generate [post]
func (h *TipHandler) Generate(c *gin.Context) {
	userID, ok := getUserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
		return
	}
	ctx := c.Request.Context()

	var profile models.Profile
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&profile); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		stored, err := h.profiles.Get(ctx, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		profile = *stored
	}

	// explicit generation requires a finished onboarding; the daily
	// resolver is the only path that generates for incomplete profiles
	if !profile.Completed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completa tu perfil primero"})
		return
	}

	tip, err := h.tips.Generate(ctx, userID, profile)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

// @Summary      Historial de consejos
// @Tags         Tips
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Máximo de consejos"
// @Success      200    {object}  map[string]interface{}
// @Router       /tips/history [get]
func (h *TipHandler) History(c *gin.Context) {
	userID, ok := getUserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit inválido"})
			return
		}
		limit = n
	}

	tips, err := h.tips.GetHistory(c.Request.Context(), userID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

// @Summary      Historial en PDF
// @Description  Exporta el historial de consejos del usuario como reporte PDF
// @Tags         Tips
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      500  {object}  map[string]string
// @Router       /tips/history/pdf [get]
func (h *TipHandler) HistoryPDF(c *gin.Context) {
	userID, ok := getUserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
		return
	}

	tips, err := h.tips.GetHistory(c.Request.Context(), userID, 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	path, err := h.reports.GenerateHistory(pdf.HistoryData{UserID: userID, Tips: tips})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.FileAttachment(path, "historial_consejos.pdf")
}
