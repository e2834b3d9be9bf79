package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/motorfleet/cars-backend/internal/errs"
	"github.com/motorfleet/cars-backend/internal/pkg/logger"
	"github.com/motorfleet/cars-backend/internal/types"
)

type CarRepo interface {
	Find(ctx context.Context) ([]*types.Car, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*types.Car, error)
	FindByPrice(ctx context.Context, price float64) ([]*types.Car, error)
	Insert(ctx context.Context, car *types.Car) (*types.Car, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch types.CarPatch) (*types.Car, error)
	AddOwners(ctx context.Context, id primitive.ObjectID, ownerIDs []primitive.ObjectID) (*types.Car, error)
	PullOwners(ctx context.Context, ownerIDs []primitive.ObjectID) error
	MultiplyPriceInWindow(ctx context.Context, factor float64, from, to time.Time) (*mongo.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*types.Car, error)
	ManufacturerByCarID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error)
}

type carRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewCarRepo(db *mongo.Database, baseLog *logger.Logger) CarRepo {
	repoLog := baseLog.With("repo", "CarRepo")
	return &carRepo{coll: db.Collection("car"), log: repoLog}
}

func (cr *carRepo) Find(ctx context.Context) ([]*types.Car, error) {
	cursor, err := cr.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find cars: %w", err)
	}
	cars := []*types.Car{}
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("decode cars: %w", err)
	}
	return cars, nil
}

func (cr *carRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*types.Car, error) {
	var car types.Car
	if err := cr.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&car); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find car %s: %w", id.Hex(), err)
	}
	return &car, nil
}

func (cr *carRepo) FindByPrice(ctx context.Context, price float64) ([]*types.Car, error) {
	cursor, err := cr.coll.Find(ctx, bson.M{"price": price})
	if err != nil {
		return nil, fmt.Errorf("find cars by price: %w", err)
	}
	cars := []*types.Car{}
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("decode cars: %w", err)
	}
	return cars, nil
}

func (cr *carRepo) Insert(ctx context.Context, car *types.Car) (*types.Car, error) {
	res, err := cr.coll.InsertOne(ctx, car)
	if err != nil {
		return nil, fmt.Errorf("insert car: %w", err)
	}
	car.ID = res.InsertedID.(primitive.ObjectID)
	return car, nil
}

func (cr *carRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch types.CarPatch) (*types.Car, error) {
	res := cr.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": patch.SetDocument()},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var car types.Car
	if err := res.Decode(&car); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFoundf("Car with id %s not found", id.Hex())
		}
		return nil, fmt.Errorf("update car %s: %w", id.Hex(), err)
	}
	return &car, nil
}

func (cr *carRepo) AddOwners(ctx context.Context, id primitive.ObjectID, ownerIDs []primitive.ObjectID) (*types.Car, error) {
	res := cr.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"owners": bson.M{"$each": ownerIDs}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var car types.Car
	if err := res.Decode(&car); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFoundf("Car with id %s not found", id.Hex())
		}
		return nil, fmt.Errorf("add owners to car %s: %w", id.Hex(), err)
	}
	return &car, nil
}

// PullOwners removes the given owner ids from the owners set of every car,
// with no id filter.
func (cr *carRepo) PullOwners(ctx context.Context, ownerIDs []primitive.ObjectID) error {
	_, err := cr.coll.UpdateMany(
		ctx,
		bson.M{},
		bson.M{"$pull": bson.M{"owners": bson.M{"$in": ownerIDs}}},
	)
	if err != nil {
		return fmt.Errorf("pull owners from cars: %w", err)
	}
	return nil
}

// MultiplyPriceInWindow multiplies the price of every car whose
// firstRegistrationDate falls in [from, to). $mul compounds across calls.
func (cr *carRepo) MultiplyPriceInWindow(ctx context.Context, factor float64, from, to time.Time) (*mongo.UpdateResult, error) {
	res, err := cr.coll.UpdateMany(
		ctx,
		bson.M{"firstRegistrationDate": bson.M{"$gte": from, "$lt": to}},
		bson.M{"$mul": bson.M{"price": factor}},
	)
	if err != nil {
		return nil, fmt.Errorf("discount cars: %w", err)
	}
	return res, nil
}

func (cr *carRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*types.Car, error) {
	var car types.Car
	if err := cr.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&car); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// A delete miss is not an error; the caller just gets no record.
			return nil, nil
		}
		return nil, fmt.Errorf("delete car %s: %w", id.Hex(), err)
	}
	return &car, nil
}

func (cr *carRepo) ManufacturerByCarID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "manufacturer"},
			{Key: "localField", Value: "manufacturerId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "manufacturer"},
		}}},
		bson.D{{Key: "$unwind", Value: "$manufacturer"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "manufacturer", Value: true},
			{Key: "_id", Value: false},
		}}},
	}
	cursor, err := cr.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate manufacturer for car %s: %w", id.Hex(), err)
	}
	defer cursor.Close(ctx)

	// A missing car and a dangling manufacturerId both end here: the pipeline
	// simply yields nothing.
	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("read manufacturer for car %s: %w", id.Hex(), err)
		}
		return nil, errs.NotFoundf("Manufacturer not found")
	}
	var doc struct {
		Manufacturer types.Manufacturer `bson:"manufacturer"`
	}
	if err := cursor.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode manufacturer for car %s: %w", id.Hex(), err)
	}
	return &doc.Manufacturer, nil
}
