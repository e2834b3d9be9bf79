package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motorfleet/cars-backend/internal/errs"
	"github.com/motorfleet/cars-backend/internal/pkg/logger"
	"github.com/motorfleet/cars-backend/internal/services"
	"github.com/motorfleet/cars-backend/internal/types"
)

type CarHandler struct {
	log                 *logger.Logger
	carService          services.CarService
	manufacturerService services.ManufacturerService
	ownerService        services.OwnerService
	discountService     services.DiscountService
}

func NewCarHandler(
	log *logger.Logger,
	carService services.CarService,
	manufacturerService services.ManufacturerService,
	ownerService services.OwnerService,
	discountService services.DiscountService,
) *CarHandler {
	return &CarHandler{
		log:                 log,
		carService:          carService,
		manufacturerService: manufacturerService,
		ownerService:        ownerService,
		discountService:     discountService,
	}
}

type createCarRequest struct {
	ManufacturerID        string     `json:"manufacturerId"`
	Price                 *float64   `json:"price"`
	FirstRegistrationDate *time.Time `json:"firstRegistrationDate"`
	Owners                []string   `json:"owners"`
}

func (r createCarRequest) parse() (*types.Car, error) {
	car := &types.Car{}
	if r.ManufacturerID != "" {
		id, err := primitive.ObjectIDFromHex(r.ManufacturerID)
		if err != nil {
			return nil, errs.InvalidArgumentf("manufacturerId is not valid MongoDB ObjectId")
		}
		car.ManufacturerID = id
	}
	if r.Price == nil {
		return nil, errs.InvalidArgumentf("price is required")
	}
	if *r.Price < 0 {
		return nil, errs.InvalidArgumentf("price must not be negative")
	}
	car.Price = *r.Price
	if r.FirstRegistrationDate != nil {
		car.FirstRegistrationDate = *r.FirstRegistrationDate
	}
	owners, err := parseObjectIDs(r.Owners, "All elements in owners array must be valid MongoDB ObjectIds")
	if err != nil {
		return nil, err
	}
	car.Owners = owners
	return car, nil
}

type updateCarRequest struct {
	ManufacturerID        *string    `json:"manufacturerId"`
	Price                 *float64   `json:"price"`
	FirstRegistrationDate *time.Time `json:"firstRegistrationDate"`
	Owners                *[]string  `json:"owners"`
}

func (r updateCarRequest) parse() (types.CarPatch, error) {
	patch := types.CarPatch{
		Price:                 r.Price,
		FirstRegistrationDate: r.FirstRegistrationDate,
	}
	if r.Price != nil && *r.Price < 0 {
		return types.CarPatch{}, errs.InvalidArgumentf("price must not be negative")
	}
	if r.ManufacturerID != nil {
		id, err := primitive.ObjectIDFromHex(*r.ManufacturerID)
		if err != nil {
			return types.CarPatch{}, errs.InvalidArgumentf("manufacturerId is not valid MongoDB ObjectId")
		}
		patch.ManufacturerID = &id
	}
	if r.Owners != nil {
		owners, err := parseObjectIDs(*r.Owners, "All elements in owners array must be valid MongoDB ObjectIds")
		if err != nil {
			return types.CarPatch{}, err
		}
		if owners == nil {
			owners = []primitive.ObjectID{}
		}
		patch.Owners = &owners
	}
	return patch, nil
}

type addOwnersRequest struct {
	Owners []string `json:"owners"`
}

func (ch *CarHandler) FindAll(c *gin.Context) {
	cars, err := ch.carService.FindAll(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, cars)
}

func (ch *CarHandler) FindByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	car, err := ch.carService.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, car)
}

func (ch *CarHandler) FindByPrice(c *gin.Context) {
	price, err := strconv.ParseFloat(c.Param("price"), 64)
	if err != nil {
		RespondServiceError(c, errs.InvalidArgumentf("price is not a valid number"))
		return
	}
	cars, err := ch.carService.FindByPrice(c.Request.Context(), price)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, cars)
}

func (ch *CarHandler) ManufacturerByCarID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	manufacturer, err := ch.carService.ManufacturerByCarID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, manufacturer)
}

// Create validates manufacturer and owner references before the car service
// persists anything; the service itself does not re-validate.
func (ch *CarHandler) Create(c *gin.Context) {
	var req createCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	car, err := req.parse()
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := ch.manufacturerService.CheckExistence(ctx, car.ManufacturerID); err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := ch.ownerService.CheckExistence(ctx, car.Owners); err != nil {
		RespondServiceError(c, err)
		return
	}
	created, err := ch.carService.Create(ctx, car)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (ch *CarHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req updateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	patch, err := req.parse()
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	ctx := c.Request.Context()
	if patch.ManufacturerID != nil {
		if err := ch.manufacturerService.CheckExistence(ctx, *patch.ManufacturerID); err != nil {
			RespondServiceError(c, err)
			return
		}
	}
	if patch.Owners != nil {
		if err := ch.ownerService.CheckExistence(ctx, *patch.Owners); err != nil {
			RespondServiceError(c, err)
			return
		}
	}
	updated, err := ch.carService.Update(ctx, id, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *CarHandler) AddOwners(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req addOwnersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	ownerIDs, err := parseObjectIDs(req.Owners, "All elements in owners array must be valid MongoDB ObjectIds")
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := ch.ownerService.CheckExistence(ctx, ownerIDs); err != nil {
		RespondServiceError(c, err)
		return
	}
	updated, err := ch.carService.AddOwners(ctx, id, ownerIDs)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *CarHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	deleted, err := ch.carService.Delete(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, deleted)
}

func (ch *CarHandler) RunDiscountProcess(c *gin.Context) {
	msg, err := ch.discountService.Run(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.String(http.StatusOK, msg)
}
