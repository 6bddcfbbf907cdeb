package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qrartisan/qrartisan/internal/design"
)

// ListDesigns returns every stored design ordered by id.
func (h *Handler) ListDesigns(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

// GetDesign returns a single design by id.
func (h *Handler) GetDesign(c *gin.Context) {
	id, ok := designID(c)
	if !ok {
		return
	}
	d, err := h.store.Get(id)
	if errors.Is(err, design.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "design not found"})
		return
	}
	c.JSON(http.StatusOK, d)
}

// CreateDesign stores a new design and returns it with its assigned id.
func (h *Handler) CreateDesign(c *gin.Context) {
	var d design.Design
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid design: " + err.Error()})
		return
	}
	created, err := h.store.Create(d)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateDesign replaces the design with the given id.
func (h *Handler) UpdateDesign(c *gin.Context) {
	id, ok := designID(c)
	if !ok {
		return
	}
	var d design.Design
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid design: " + err.Error()})
		return
	}
	updated, err := h.store.Update(id, d)
	switch {
	case errors.Is(err, design.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "design not found"})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteDesign removes the design with the given id.
func (h *Handler) DeleteDesign(c *gin.Context) {
	id, ok := designID(c)
	if !ok {
		return
	}
	err := h.store.Delete(id)
	if errors.Is(err, design.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "design not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func designID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid design id"})
		return 0, false
	}
	return id, true
}
