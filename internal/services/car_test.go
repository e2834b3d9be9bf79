package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motorfleet/cars-backend/internal/errs"
	"github.com/motorfleet/cars-backend/internal/types"
)

func TestCarCreateDefaultsFirstRegistrationDate(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	before := time.Now()
	stored, err := svc.Create(context.Background(), &types.Car{Price: 10000})
	require.NoError(t, err)
	require.False(t, stored.FirstRegistrationDate.Before(before))
	require.False(t, stored.ID.IsZero())
}

func TestCarCreateDoesNotValidateReferences(t *testing.T) {
	// Reference validation is the boundary layer's contract; the service
	// persists whatever ids it is handed.
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	stored, err := svc.Create(context.Background(), &types.Car{
		ManufacturerID: primitive.NewObjectID(),
		Owners:         []primitive.ObjectID{primitive.NewObjectID()},
		Price:          500,
	})
	require.NoError(t, err)
	require.Equal(t, 1, repo.insertCalls)
	require.Len(t, stored.Owners, 1)
}

func TestCarAddOwnersIsSetUnion(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	existing := primitive.NewObjectID()
	car, err := svc.Create(context.Background(), &types.Car{
		Price:  100,
		Owners: []primitive.ObjectID{existing},
	})
	require.NoError(t, err)

	newcomer := primitive.NewObjectID()
	updated, err := svc.AddOwners(context.Background(), car.ID, []primitive.ObjectID{existing, newcomer})
	require.NoError(t, err)
	require.ElementsMatch(t, []primitive.ObjectID{existing, newcomer}, updated.Owners)

	// Re-adding the same ids leaves the set unchanged in size.
	updated, err = svc.AddOwners(context.Background(), car.ID, []primitive.ObjectID{existing})
	require.NoError(t, err)
	require.Len(t, updated.Owners, 2)
}

func TestCarAddOwnersMissingCar(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	_, err := svc.AddOwners(context.Background(), primitive.NewObjectID(), []primitive.ObjectID{primitive.NewObjectID()})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCarRemoveOwnersAcrossAllCars(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	target := primitive.NewObjectID()
	other := primitive.NewObjectID()

	withTarget, err := svc.Create(context.Background(), &types.Car{
		Price:  100,
		Owners: []primitive.ObjectID{target, other},
	})
	require.NoError(t, err)
	withoutTarget, err := svc.Create(context.Background(), &types.Car{
		Price:  200,
		Owners: []primitive.ObjectID{other},
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveOwners(context.Background(), []primitive.ObjectID{target}))

	got, err := svc.FindByID(context.Background(), withTarget.ID)
	require.NoError(t, err)
	require.Equal(t, []primitive.ObjectID{other}, got.Owners)

	got, err = svc.FindByID(context.Background(), withoutTarget.ID)
	require.NoError(t, err)
	require.Equal(t, []primitive.ObjectID{other}, got.Owners)
}

func TestCarDiscountWindowCompounds(t *testing.T) {
	// Re-running the discount re-multiplies the price; the job is only safe
	// to run once per period and the test pins that behavior down.
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	car, err := svc.Create(context.Background(), &types.Car{
		Price:                 1000,
		FirstRegistrationDate: time.Now().AddDate(0, -15, 0),
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		res, err := svc.Discount12to18Months(context.Background())
		require.NoError(t, err)
		require.EqualValues(t, 1, res.MatchedCount)
	}

	got, err := svc.FindByID(context.Background(), car.ID)
	require.NoError(t, err)
	require.InDelta(t, 640, got.Price, 0.0001)
}

func TestCarDiscountWindowExcludesOutsideRange(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	tooOld, err := svc.Create(context.Background(), &types.Car{
		Price:                 1000,
		FirstRegistrationDate: time.Now().AddDate(0, -19, 0),
	})
	require.NoError(t, err)
	tooRecent, err := svc.Create(context.Background(), &types.Car{
		Price:                 1000,
		FirstRegistrationDate: time.Now().AddDate(0, -11, 0),
	})
	require.NoError(t, err)

	res, err := svc.Discount12to18Months(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 0, res.MatchedCount)

	for _, id := range []primitive.ObjectID{tooOld.ID, tooRecent.ID} {
		got, err := svc.FindByID(context.Background(), id)
		require.NoError(t, err)
		require.InDelta(t, 1000, got.Price, 0.0001)
	}
}

func TestCarManufacturerByCarIDDanglingReference(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	car, err := svc.Create(context.Background(), &types.Car{
		ManufacturerID: primitive.NewObjectID(),
		Price:          100,
	})
	require.NoError(t, err)

	_, err = svc.ManufacturerByCarID(context.Background(), car.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.EqualError(t, err, "Manufacturer not found")
}

func TestCarManufacturerByCarIDMissingCar(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	// A missing car surfaces exactly like a dangling reference.
	_, err := svc.ManufacturerByCarID(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.EqualError(t, err, "Manufacturer not found")
}

func TestCarManufacturerByCarIDFound(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	manufacturer := &types.Manufacturer{ID: primitive.NewObjectID(), Name: "Renault"}
	repo.manufacturers[manufacturer.ID] = manufacturer

	car, err := svc.Create(context.Background(), &types.Car{ManufacturerID: manufacturer.ID, Price: 100})
	require.NoError(t, err)

	got, err := svc.ManufacturerByCarID(context.Background(), car.ID)
	require.NoError(t, err)
	require.Equal(t, "Renault", got.Name)
}

func TestCarUpdateMissing(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	price := 100.0
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), types.CarPatch{Price: &price})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCarUpdatePartialPatch(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	registered := time.Now().AddDate(0, -3, 0)
	car, err := svc.Create(context.Background(), &types.Car{
		Price:                 100,
		FirstRegistrationDate: registered,
	})
	require.NoError(t, err)

	price := 250.0
	updated, err := svc.Update(context.Background(), car.ID, types.CarPatch{Price: &price})
	require.NoError(t, err)
	require.Equal(t, 250.0, updated.Price)
	require.True(t, updated.FirstRegistrationDate.Equal(registered), "unspecified fields stay untouched")
}

func TestCarDeleteMissReturnsNoRecord(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo, testLogger())

	deleted, err := svc.Delete(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	require.Nil(t, deleted)
}
