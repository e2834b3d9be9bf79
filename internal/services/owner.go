package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motorfleet/cars-backend/internal/errs"
	"github.com/motorfleet/cars-backend/internal/pkg/logger"
	"github.com/motorfleet/cars-backend/internal/repos"
	"github.com/motorfleet/cars-backend/internal/types"
	"github.com/motorfleet/cars-backend/internal/utils"
)

// ownerStaleMonths is how old a purchase must be before the cleanup workflow
// ages the owner record out.
const ownerStaleMonths = 18

type OwnerService interface {
	FindAll(ctx context.Context) ([]*types.Owner, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*types.Owner, error)
	// CheckExistence succeeds trivially for an empty id list; otherwise it
	// fails with a not-found error when the batched lookup returns fewer
	// records than ids requested. Duplicate ids are counted as requested, so
	// a list with duplicates can fail even when every id exists.
	CheckExistence(ctx context.Context, ids []primitive.ObjectID) error
	Create(ctx context.Context, owner *types.Owner) (*types.Owner, error)
	Update(ctx context.Context, id primitive.ObjectID, patch types.OwnerPatch) (*types.Owner, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*types.Owner, error)
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error
	IDsOlderThan18Months(ctx context.Context) ([]primitive.ObjectID, error)
}

type ownerService struct {
	ownerRepo repos.OwnerRepo
	log       *logger.Logger
}

func NewOwnerService(ownerRepo repos.OwnerRepo, log *logger.Logger) OwnerService {
	serviceLog := log.With("service", "OwnerService")
	return &ownerService{ownerRepo: ownerRepo, log: serviceLog}
}

func (os *ownerService) FindAll(ctx context.Context) ([]*types.Owner, error) {
	return os.ownerRepo.Find(ctx)
}

func (os *ownerService) FindByID(ctx context.Context, id primitive.ObjectID) (*types.Owner, error) {
	owner, err := os.ownerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errs.NotFoundf("Owner with id %s not found", id.Hex())
	}
	return owner, nil
}

func (os *ownerService) CheckExistence(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	stored, err := os.ownerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(stored) < len(ids) {
		return errs.NotFoundf("Some owners not found")
	}
	return nil
}

func (os *ownerService) Create(ctx context.Context, owner *types.Owner) (*types.Owner, error) {
	if owner.PurchaseDate.IsZero() {
		owner.PurchaseDate = time.Now()
	}
	return os.ownerRepo.Insert(ctx, owner)
}

func (os *ownerService) Update(ctx context.Context, id primitive.ObjectID, patch types.OwnerPatch) (*types.Owner, error) {
	return os.ownerRepo.UpdateByID(ctx, id, patch)
}

func (os *ownerService) Delete(ctx context.Context, id primitive.ObjectID) (*types.Owner, error) {
	return os.ownerRepo.DeleteByID(ctx, id)
}

func (os *ownerService) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	return os.ownerRepo.DeleteByIDs(ctx, ids)
}

func (os *ownerService) IDsOlderThan18Months(ctx context.Context) ([]primitive.ObjectID, error) {
	cutoff := utils.PastDateByMonths(ownerStaleMonths)
	ids, err := os.ownerRepo.IDsWithPurchaseBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	os.log.Debug("Selected stale owners", "cutoff", cutoff, "count", len(ids))
	return ids, nil
}
