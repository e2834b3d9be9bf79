package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/motorfleet/cars-backend/internal/errs"
	"github.com/motorfleet/cars-backend/internal/types"
)

// In-memory repo fakes mirroring the store semantics the services rely on:
// $addToSet set-union, $pull across all cars, $mul compounding, and batched
// id lookups returning one record per distinct id.

type fakeCarRepo struct {
	cars          map[primitive.ObjectID]*types.Car
	manufacturers map[primitive.ObjectID]*types.Manufacturer

	removeOwnersErr error
	discountErr     error
	insertCalls     int
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{
		cars:          map[primitive.ObjectID]*types.Car{},
		manufacturers: map[primitive.ObjectID]*types.Manufacturer{},
	}
}

func (f *fakeCarRepo) Find(ctx context.Context) ([]*types.Car, error) {
	out := []*types.Car{}
	for _, car := range f.cars {
		out = append(out, car)
	}
	return out, nil
}

func (f *fakeCarRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*types.Car, error) {
	return f.cars[id], nil
}

func (f *fakeCarRepo) FindByPrice(ctx context.Context, price float64) ([]*types.Car, error) {
	out := []*types.Car{}
	for _, car := range f.cars {
		if car.Price == price {
			out = append(out, car)
		}
	}
	return out, nil
}

func (f *fakeCarRepo) Insert(ctx context.Context, car *types.Car) (*types.Car, error) {
	f.insertCalls++
	if car.ID.IsZero() {
		car.ID = primitive.NewObjectID()
	}
	f.cars[car.ID] = car
	return car, nil
}

func (f *fakeCarRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch types.CarPatch) (*types.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, errs.NotFoundf("Car with id %s not found", id.Hex())
	}
	if patch.ManufacturerID != nil {
		car.ManufacturerID = *patch.ManufacturerID
	}
	if patch.Price != nil {
		car.Price = *patch.Price
	}
	if patch.FirstRegistrationDate != nil {
		car.FirstRegistrationDate = *patch.FirstRegistrationDate
	}
	if patch.Owners != nil {
		car.Owners = *patch.Owners
	}
	return car, nil
}

func (f *fakeCarRepo) AddOwners(ctx context.Context, id primitive.ObjectID, ownerIDs []primitive.ObjectID) (*types.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, errs.NotFoundf("Car with id %s not found", id.Hex())
	}
	present := map[primitive.ObjectID]struct{}{}
	for _, ownerID := range car.Owners {
		present[ownerID] = struct{}{}
	}
	for _, ownerID := range ownerIDs {
		if _, ok := present[ownerID]; ok {
			continue
		}
		present[ownerID] = struct{}{}
		car.Owners = append(car.Owners, ownerID)
	}
	return car, nil
}

func (f *fakeCarRepo) PullOwners(ctx context.Context, ownerIDs []primitive.ObjectID) error {
	if f.removeOwnersErr != nil {
		return f.removeOwnersErr
	}
	drop := map[primitive.ObjectID]struct{}{}
	for _, id := range ownerIDs {
		drop[id] = struct{}{}
	}
	for _, car := range f.cars {
		kept := car.Owners[:0]
		for _, ownerID := range car.Owners {
			if _, ok := drop[ownerID]; !ok {
				kept = append(kept, ownerID)
			}
		}
		car.Owners = kept
	}
	return nil
}

func (f *fakeCarRepo) MultiplyPriceInWindow(ctx context.Context, factor float64, from, to time.Time) (*mongo.UpdateResult, error) {
	if f.discountErr != nil {
		return nil, f.discountErr
	}
	var matched int64
	for _, car := range f.cars {
		t := car.FirstRegistrationDate
		if !t.Before(from) && t.Before(to) {
			car.Price *= factor
			matched++
		}
	}
	return &mongo.UpdateResult{MatchedCount: matched, ModifiedCount: matched}, nil
}

func (f *fakeCarRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*types.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, nil
	}
	delete(f.cars, id)
	return car, nil
}

func (f *fakeCarRepo) ManufacturerByCarID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, errs.NotFoundf("Manufacturer not found")
	}
	manufacturer, ok := f.manufacturers[car.ManufacturerID]
	if !ok {
		return nil, errs.NotFoundf("Manufacturer not found")
	}
	return manufacturer, nil
}

type fakeOwnerRepo struct {
	owners map[primitive.ObjectID]*types.Owner

	findByIDsCalls   int
	deleteByIDsCalls int
	deleteByIDsErr   error
}

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: map[primitive.ObjectID]*types.Owner{}}
}

func (f *fakeOwnerRepo) Find(ctx context.Context) ([]*types.Owner, error) {
	out := []*types.Owner{}
	for _, owner := range f.owners {
		out = append(out, owner)
	}
	return out, nil
}

func (f *fakeOwnerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*types.Owner, error) {
	return f.owners[id], nil
}

func (f *fakeOwnerRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*types.Owner, error) {
	f.findByIDsCalls++
	seen := map[primitive.ObjectID]struct{}{}
	out := []*types.Owner{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if owner, ok := f.owners[id]; ok {
			out = append(out, owner)
		}
	}
	return out, nil
}

func (f *fakeOwnerRepo) Insert(ctx context.Context, owner *types.Owner) (*types.Owner, error) {
	if owner.ID.IsZero() {
		owner.ID = primitive.NewObjectID()
	}
	f.owners[owner.ID] = owner
	return owner, nil
}

func (f *fakeOwnerRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch types.OwnerPatch) (*types.Owner, error) {
	owner, ok := f.owners[id]
	if !ok {
		return nil, errs.NotFoundf("Owner with id %s not found", id.Hex())
	}
	if patch.Name != nil {
		owner.Name = *patch.Name
	}
	if patch.PurchaseDate != nil {
		owner.PurchaseDate = *patch.PurchaseDate
	}
	return owner, nil
}

func (f *fakeOwnerRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*types.Owner, error) {
	owner, ok := f.owners[id]
	if !ok {
		return nil, nil
	}
	delete(f.owners, id)
	return owner, nil
}

func (f *fakeOwnerRepo) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	f.deleteByIDsCalls++
	if f.deleteByIDsErr != nil {
		return f.deleteByIDsErr
	}
	for _, id := range ids {
		delete(f.owners, id)
	}
	return nil
}

func (f *fakeOwnerRepo) IDsWithPurchaseBefore(ctx context.Context, cutoff time.Time) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	for id, owner := range f.owners {
		if !owner.PurchaseDate.After(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeManufacturerRepo struct {
	manufacturers map[primitive.ObjectID]*types.Manufacturer

	findByIDCalls int
}

func newFakeManufacturerRepo() *fakeManufacturerRepo {
	return &fakeManufacturerRepo{manufacturers: map[primitive.ObjectID]*types.Manufacturer{}}
}

func (f *fakeManufacturerRepo) Find(ctx context.Context) ([]*types.Manufacturer, error) {
	out := []*types.Manufacturer{}
	for _, manufacturer := range f.manufacturers {
		out = append(out, manufacturer)
	}
	return out, nil
}

func (f *fakeManufacturerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error) {
	f.findByIDCalls++
	return f.manufacturers[id], nil
}

func (f *fakeManufacturerRepo) Insert(ctx context.Context, manufacturer *types.Manufacturer) (*types.Manufacturer, error) {
	if manufacturer.ID.IsZero() {
		manufacturer.ID = primitive.NewObjectID()
	}
	f.manufacturers[manufacturer.ID] = manufacturer
	return manufacturer, nil
}

func (f *fakeManufacturerRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch types.ManufacturerPatch) (*types.Manufacturer, error) {
	manufacturer, ok := f.manufacturers[id]
	if !ok {
		return nil, errs.NotFoundf("Manufacturer with id %s not found", id.Hex())
	}
	if patch.Name != nil {
		manufacturer.Name = *patch.Name
	}
	if patch.Phone != nil {
		manufacturer.Phone = *patch.Phone
	}
	if patch.Siret != nil {
		manufacturer.Siret = *patch.Siret
	}
	return manufacturer, nil
}

func (f *fakeManufacturerRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error) {
	manufacturer, ok := f.manufacturers[id]
	if !ok {
		return nil, nil
	}
	delete(f.manufacturers, id)
	return manufacturer, nil
}
