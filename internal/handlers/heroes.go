package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/heroes/internal/services"
	apperrors "github.com/charlesng35/heroes/pkg/errors"
	"github.com/charlesng35/heroes/pkg/response"
)

// HeroHandler exposes CRUD endpoints for heroes.
type HeroHandler struct {
	service *services.HeroService
}

type createHeroRequest struct {
	Name      string   `json:"name" validate:"required,nonblank,max=120"`
	Abilities []string `json:"abilities" validate:"required,min=1,dive,nonblank"`
	Origin    string   `json:"origin" validate:"required,nonblank,max=120"`
}

type updateHeroRequest struct {
	Name      *string   `json:"name" validate:"omitnil,nonblank,max=120"`
	Abilities *[]string `json:"abilities" validate:"omitnil,min=1,dive,nonblank"`
	Origin    *string   `json:"origin" validate:"omitnil,nonblank,max=120"`
}

// NewHeroHandler constructs a hero handler around the supplied service.
func NewHeroHandler(service *services.HeroService) (*HeroHandler, error) {
	if service == nil {
		return nil, errors.New("hero handler: service is required")
	}
	return &HeroHandler{service: service}, nil
}

// POST /heroes
func (h *HeroHandler) Create(c *gin.Context) {
	var body createHeroRequest
	if !bindAndValidate(c, &body) {
		return
	}

	hero, err := h.service.Create(c.Request.Context(), services.CreateHeroInput{
		Name:      body.Name,
		Abilities: body.Abilities,
		Origin:    body.Origin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Hero created successfully", hero)
}

// GET /heroes
func (h *HeroHandler) List(c *gin.Context) {
	heroes, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "List of heroes retrieved successfully", heroes)
}

// GET /heroes/:id
func (h *HeroHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	hero, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Hero retrieved successfully", hero)
}

// PATCH /heroes/:id
func (h *HeroHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var body updateHeroRequest
	if !bindAndValidate(c, &body) {
		return
	}

	hero, err := h.service.Update(c.Request.Context(), id, services.UpdateHeroInput{
		Name:      body.Name,
		Abilities: body.Abilities,
		Origin:    body.Origin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Hero updated successfully", hero)
}

// DELETE /heroes/:id
func (h *HeroHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusNoContent, "Hero deleted successfully")
}

// parseIDParam reads the :id path segment as a positive integer, writing a 400 response
// when it is malformed.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.Error(c, apperrors.NewBadRequest("id must be a positive integer"))
		return 0, false
	}
	return id, true
}
