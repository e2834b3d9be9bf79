package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motorfleet/cars-backend/internal/errs"
	"github.com/motorfleet/cars-backend/internal/pkg/logger"
	"github.com/motorfleet/cars-backend/internal/repos"
	"github.com/motorfleet/cars-backend/internal/types"
)

type ManufacturerService interface {
	FindAll(ctx context.Context) ([]*types.Manufacturer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error)
	// CheckExistence succeeds trivially for a zero id; otherwise it fails with
	// a not-found error when no manufacturer has the given id.
	CheckExistence(ctx context.Context, id primitive.ObjectID) error
	Create(ctx context.Context, manufacturer *types.Manufacturer) (*types.Manufacturer, error)
	Update(ctx context.Context, id primitive.ObjectID, patch types.ManufacturerPatch) (*types.Manufacturer, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error)
}

type manufacturerService struct {
	manufacturerRepo repos.ManufacturerRepo
	log              *logger.Logger
}

func NewManufacturerService(manufacturerRepo repos.ManufacturerRepo, log *logger.Logger) ManufacturerService {
	serviceLog := log.With("service", "ManufacturerService")
	return &manufacturerService{manufacturerRepo: manufacturerRepo, log: serviceLog}
}

func (ms *manufacturerService) FindAll(ctx context.Context) ([]*types.Manufacturer, error) {
	return ms.manufacturerRepo.Find(ctx)
}

func (ms *manufacturerService) FindByID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error) {
	manufacturer, err := ms.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manufacturer == nil {
		return nil, errs.NotFoundf("Manufacturer with id %s not found", id.Hex())
	}
	return manufacturer, nil
}

func (ms *manufacturerService) CheckExistence(ctx context.Context, id primitive.ObjectID) error {
	if id.IsZero() {
		return nil
	}
	manufacturer, err := ms.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if manufacturer == nil {
		return errs.NotFoundf("Manufacturer with id %s not found", id.Hex())
	}
	return nil
}

func (ms *manufacturerService) Create(ctx context.Context, manufacturer *types.Manufacturer) (*types.Manufacturer, error) {
	return ms.manufacturerRepo.Insert(ctx, manufacturer)
}

func (ms *manufacturerService) Update(ctx context.Context, id primitive.ObjectID, patch types.ManufacturerPatch) (*types.Manufacturer, error) {
	return ms.manufacturerRepo.UpdateByID(ctx, id, patch)
}

func (ms *manufacturerService) Delete(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error) {
	return ms.manufacturerRepo.DeleteByID(ctx, id)
}
