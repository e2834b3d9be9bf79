package repos

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/motorfleet/cars-backend/internal/errs"
	"github.com/motorfleet/cars-backend/internal/pkg/logger"
	"github.com/motorfleet/cars-backend/internal/types"
)

type ManufacturerRepo interface {
	Find(ctx context.Context) ([]*types.Manufacturer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error)
	Insert(ctx context.Context, manufacturer *types.Manufacturer) (*types.Manufacturer, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch types.ManufacturerPatch) (*types.Manufacturer, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error)
}

type manufacturerRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewManufacturerRepo(db *mongo.Database, baseLog *logger.Logger) ManufacturerRepo {
	repoLog := baseLog.With("repo", "ManufacturerRepo")
	return &manufacturerRepo{coll: db.Collection("manufacturer"), log: repoLog}
}

func (mr *manufacturerRepo) Find(ctx context.Context) ([]*types.Manufacturer, error) {
	cursor, err := mr.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find manufacturers: %w", err)
	}
	manufacturers := []*types.Manufacturer{}
	if err := cursor.All(ctx, &manufacturers); err != nil {
		return nil, fmt.Errorf("decode manufacturers: %w", err)
	}
	return manufacturers, nil
}

func (mr *manufacturerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error) {
	var manufacturer types.Manufacturer
	if err := mr.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&manufacturer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find manufacturer %s: %w", id.Hex(), err)
	}
	return &manufacturer, nil
}

func (mr *manufacturerRepo) Insert(ctx context.Context, manufacturer *types.Manufacturer) (*types.Manufacturer, error) {
	res, err := mr.coll.InsertOne(ctx, manufacturer)
	if err != nil {
		return nil, fmt.Errorf("insert manufacturer: %w", err)
	}
	manufacturer.ID = res.InsertedID.(primitive.ObjectID)
	return manufacturer, nil
}

func (mr *manufacturerRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch types.ManufacturerPatch) (*types.Manufacturer, error) {
	res := mr.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": patch.SetDocument()},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var manufacturer types.Manufacturer
	if err := res.Decode(&manufacturer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFoundf("Manufacturer with id %s not found", id.Hex())
		}
		return nil, fmt.Errorf("update manufacturer %s: %w", id.Hex(), err)
	}
	return &manufacturer, nil
}

func (mr *manufacturerRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*types.Manufacturer, error) {
	var manufacturer types.Manufacturer
	if err := mr.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&manufacturer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete manufacturer %s: %w", id.Hex(), err)
	}
	return &manufacturer, nil
}
