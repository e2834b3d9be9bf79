package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/motorfleet/cars-backend/internal/errs"
	"github.com/motorfleet/cars-backend/internal/pkg/logger"
	"github.com/motorfleet/cars-backend/internal/repos"
	"github.com/motorfleet/cars-backend/internal/types"
	"github.com/motorfleet/cars-backend/internal/utils"
)

const (
	// discountFactor is the 20% price reduction applied by the batch job.
	discountFactor = 0.80

	discountWindowStartMonths = 18
	discountWindowEndMonths   = 12
)

// CarService owns the car lifecycle. Reference validation is the boundary
// layer's job: Create and Update trust the ids they are given.
type CarService interface {
	FindAll(ctx context.Context) ([]*types.Car, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*types.Car, error)
	FindByPrice(ctx context.Context, price float64) ([]*types.Car, error)
	ManufacturerByCarID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error)
	Create(ctx context.Context, car *types.Car) (*types.Car, error)
	Update(ctx context.Context, id primitive.ObjectID, patch types.CarPatch) (*types.Car, error)
	AddOwners(ctx context.Context, id primitive.ObjectID, ownerIDs []primitive.ObjectID) (*types.Car, error)
	RemoveOwners(ctx context.Context, ownerIDs []primitive.ObjectID) error
	ApplyDiscount(ctx context.Context, factor float64, from, to time.Time) (*mongo.UpdateResult, error)
	Discount12to18Months(ctx context.Context) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*types.Car, error)
}

type carService struct {
	carRepo repos.CarRepo
	log     *logger.Logger
}

func NewCarService(carRepo repos.CarRepo, log *logger.Logger) CarService {
	serviceLog := log.With("service", "CarService")
	return &carService{carRepo: carRepo, log: serviceLog}
}

func (cs *carService) FindAll(ctx context.Context) ([]*types.Car, error) {
	return cs.carRepo.Find(ctx)
}

func (cs *carService) FindByID(ctx context.Context, id primitive.ObjectID) (*types.Car, error) {
	car, err := cs.carRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, errs.NotFoundf("Car with id %s not found", id.Hex())
	}
	return car, nil
}

func (cs *carService) FindByPrice(ctx context.Context, price float64) ([]*types.Car, error) {
	return cs.carRepo.FindByPrice(ctx, price)
}

func (cs *carService) ManufacturerByCarID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error) {
	return cs.carRepo.ManufacturerByCarID(ctx, id)
}

func (cs *carService) Create(ctx context.Context, car *types.Car) (*types.Car, error) {
	if car.FirstRegistrationDate.IsZero() {
		car.FirstRegistrationDate = time.Now()
	}
	return cs.carRepo.Insert(ctx, car)
}

func (cs *carService) Update(ctx context.Context, id primitive.ObjectID, patch types.CarPatch) (*types.Car, error) {
	return cs.carRepo.UpdateByID(ctx, id, patch)
}

func (cs *carService) AddOwners(ctx context.Context, id primitive.ObjectID, ownerIDs []primitive.ObjectID) (*types.Car, error) {
	return cs.carRepo.AddOwners(ctx, id, ownerIDs)
}

// RemoveOwners detaches the given owner ids from every car referencing them.
func (cs *carService) RemoveOwners(ctx context.Context, ownerIDs []primitive.ObjectID) error {
	return cs.carRepo.PullOwners(ctx, ownerIDs)
}

// ApplyDiscount multiplies the price of every car first registered in
// [from, to) by factor. Calling it twice compounds the discount; the batch
// job relies on being run once per period.
func (cs *carService) ApplyDiscount(ctx context.Context, factor float64, from, to time.Time) (*mongo.UpdateResult, error) {
	res, err := cs.carRepo.MultiplyPriceInWindow(ctx, factor, from, to)
	if err != nil {
		return nil, err
	}
	cs.log.Info("Applied discount", "factor", factor, "matched", res.MatchedCount, "modified", res.ModifiedCount)
	return res, nil
}

func (cs *carService) Discount12to18Months(ctx context.Context) (*mongo.UpdateResult, error) {
	from := utils.PastDateByMonths(discountWindowStartMonths)
	to := utils.PastDateByMonths(discountWindowEndMonths)
	return cs.ApplyDiscount(ctx, discountFactor, from, to)
}

func (cs *carService) Delete(ctx context.Context, id primitive.ObjectID) (*types.Car, error) {
	return cs.carRepo.DeleteByID(ctx, id)
}
