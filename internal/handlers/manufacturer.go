package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/motorfleet/cars-backend/internal/services"
	"github.com/motorfleet/cars-backend/internal/types"
)

type ManufacturerHandler struct {
	manufacturerService services.ManufacturerService
}

func NewManufacturerHandler(manufacturerService services.ManufacturerService) *ManufacturerHandler {
	return &ManufacturerHandler{manufacturerService: manufacturerService}
}

type createManufacturerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Siret int64  `json:"siret" binding:"required"`
}

type updateManufacturerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Siret *int64  `json:"siret"`
}

func (mh *ManufacturerHandler) FindAll(c *gin.Context) {
	manufacturers, err := mh.manufacturerService.FindAll(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, manufacturers)
}

func (mh *ManufacturerHandler) FindByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	manufacturer, err := mh.manufacturerService.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, manufacturer)
}

func (mh *ManufacturerHandler) Create(c *gin.Context) {
	var req createManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	created, err := mh.manufacturerService.Create(c.Request.Context(), &types.Manufacturer{
		Name:  req.Name,
		Phone: req.Phone,
		Siret: req.Siret,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (mh *ManufacturerHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req updateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	updated, err := mh.manufacturerService.Update(c.Request.Context(), id, types.ManufacturerPatch{
		Name:  req.Name,
		Phone: req.Phone,
		Siret: req.Siret,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (mh *ManufacturerHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	deleted, err := mh.manufacturerService.Delete(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, deleted)
}
