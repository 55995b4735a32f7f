package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coachtrack/internal/catalog"
	"github.com/BruksfildServices01/coachtrack/internal/httperr"
)

const defaultQuantityGrams = 100.0

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// ======================================================
// FOODS
// ======================================================

func (h *CatalogHandler) SearchFoods(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.SearchFoods(c.Request.Context(), c.Query("q")))
}

func (h *CatalogHandler) FoodNutrients(c *gin.Context) {
	grams := defaultQuantityGrams
	if raw := c.Query("quantity"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			httperr.BadRequest(c, "invalid_quantity", "Quantity must be a positive number of grams.")
			return
		}
		grams = v
	}

	c.JSON(http.StatusOK, h.catalog.FoodNutrients(c.Request.Context(), c.Param("code"), grams))
}

func (h *CatalogHandler) ScanProduct(c *gin.Context) {
	out, err := h.catalog.ScanProduct(c.Request.Context(), c.Param("barcode"))
	if errors.Is(err, catalog.ErrNotFound) {
		httperr.NotFound(c, "food_not_found", "No product matches this barcode.")
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// EXERCISES
// ======================================================

func (h *CatalogHandler) Muscles(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", h.catalog.Muscles(c.Request.Context()))
}

func (h *CatalogHandler) MuscleExercises(c *gin.Context) {
	out, err := h.catalog.MuscleExercises(c.Request.Context(), c.Param("muscle"))
	if errors.Is(err, catalog.ErrNotFound) {
		httperr.NotFound(c, "muscle_not_found", "Unknown muscle group.")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}
