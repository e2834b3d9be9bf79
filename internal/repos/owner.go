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

	"github.com/motorfleet/cars-backend/internal/cache"
	"github.com/motorfleet/cars-backend/internal/errs"
	"github.com/motorfleet/cars-backend/internal/pkg/logger"
	"github.com/motorfleet/cars-backend/internal/types"
)

type OwnerRepo interface {
	Find(ctx context.Context) ([]*types.Owner, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*types.Owner, error)
	// FindByIDs returns only the stored records matching the given ids, one
	// per distinct id. Callers infer missing ids from the count.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*types.Owner, error)
	Insert(ctx context.Context, owner *types.Owner) (*types.Owner, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch types.OwnerPatch) (*types.Owner, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*types.Owner, error)
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error
	IDsWithPurchaseBefore(ctx context.Context, cutoff time.Time) ([]primitive.ObjectID, error)
}

type ownerRepo struct {
	coll  *mongo.Collection
	cache *cache.OwnerCache
	log   *logger.Logger
}

// NewOwnerRepo accepts a nil ownerCache, which disables caching.
func NewOwnerRepo(db *mongo.Database, ownerCache *cache.OwnerCache, baseLog *logger.Logger) OwnerRepo {
	repoLog := baseLog.With("repo", "OwnerRepo")
	return &ownerRepo{coll: db.Collection("owner"), cache: ownerCache, log: repoLog}
}

func (or *ownerRepo) Find(ctx context.Context) ([]*types.Owner, error) {
	cursor, err := or.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find owners: %w", err)
	}
	owners := []*types.Owner{}
	if err := cursor.All(ctx, &owners); err != nil {
		return nil, fmt.Errorf("decode owners: %w", err)
	}
	return owners, nil
}

func (or *ownerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*types.Owner, error) {
	var owner types.Owner
	if err := or.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&owner); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find owner %s: %w", id.Hex(), err)
	}
	return &owner, nil
}

func (or *ownerRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*types.Owner, error) {
	if len(ids) == 0 {
		return []*types.Owner{}, nil
	}

	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found := make([]*types.Owner, 0, len(unique))
	missing := make([]primitive.ObjectID, 0, len(unique))
	for _, id := range unique {
		if owner, ok := or.cache.Get(ctx, id); ok {
			found = append(found, owner)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		cursor, err := or.coll.Find(ctx, bson.M{"_id": bson.M{"$in": missing}})
		if err != nil {
			return nil, fmt.Errorf("find owners by ids: %w", err)
		}
		fetched := []*types.Owner{}
		if err := cursor.All(ctx, &fetched); err != nil {
			return nil, fmt.Errorf("decode owners: %w", err)
		}
		for _, owner := range fetched {
			or.cache.Set(ctx, owner)
		}
		found = append(found, fetched...)
	}
	return found, nil
}

func (or *ownerRepo) Insert(ctx context.Context, owner *types.Owner) (*types.Owner, error) {
	res, err := or.coll.InsertOne(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("insert owner: %w", err)
	}
	owner.ID = res.InsertedID.(primitive.ObjectID)
	return owner, nil
}

func (or *ownerRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch types.OwnerPatch) (*types.Owner, error) {
	res := or.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": patch.SetDocument()},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var owner types.Owner
	if err := res.Decode(&owner); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFoundf("Owner with id %s not found", id.Hex())
		}
		return nil, fmt.Errorf("update owner %s: %w", id.Hex(), err)
	}
	or.cache.Invalidate(ctx, id)
	return &owner, nil
}

func (or *ownerRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*types.Owner, error) {
	var owner types.Owner
	if err := or.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&owner); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete owner %s: %w", id.Hex(), err)
	}
	or.cache.Invalidate(ctx, id)
	return &owner, nil
}

// DeleteByIDs issues the delete even for an empty id list.
func (or *ownerRepo) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	_, err := or.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("delete owners by ids: %w", err)
	}
	or.cache.Invalidate(ctx, ids...)
	return nil
}

func (or *ownerRepo) IDsWithPurchaseBefore(ctx context.Context, cutoff time.Time) ([]primitive.ObjectID, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "purchaseDate", Value: bson.D{{Key: "$lte", Value: cutoff}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: true}}}},
	}
	cursor, err := or.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate stale owners: %w", err)
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode stale owner ids: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
