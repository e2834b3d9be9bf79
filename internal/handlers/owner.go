package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/motorfleet/cars-backend/internal/services"
	"github.com/motorfleet/cars-backend/internal/types"
)

type OwnerHandler struct {
	ownerService services.OwnerService
}

func NewOwnerHandler(ownerService services.OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

type createOwnerRequest struct {
	Name         string     `json:"name" binding:"required"`
	PurchaseDate *time.Time `json:"purchaseDate"`
}

type updateOwnerRequest struct {
	Name         *string    `json:"name"`
	PurchaseDate *time.Time `json:"purchaseDate"`
}

func (oh *OwnerHandler) FindAll(c *gin.Context) {
	owners, err := oh.ownerService.FindAll(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, owners)
}

func (oh *OwnerHandler) FindByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	owner, err := oh.ownerService.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, owner)
}

func (oh *OwnerHandler) Create(c *gin.Context) {
	var req createOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	owner := &types.Owner{Name: req.Name}
	if req.PurchaseDate != nil {
		owner.PurchaseDate = *req.PurchaseDate
	}
	created, err := oh.ownerService.Create(c.Request.Context(), owner)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (oh *OwnerHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req updateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	updated, err := oh.ownerService.Update(c.Request.Context(), id, types.OwnerPatch{
		Name:         req.Name,
		PurchaseDate: req.PurchaseDate,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (oh *OwnerHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	deleted, err := oh.ownerService.Delete(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, deleted)
}
