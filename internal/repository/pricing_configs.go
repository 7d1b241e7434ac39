package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrVersionConflict is returned when another publish for the same tenant won
// the race for the next version.
var ErrVersionConflict = errors.New("pricing config version conflict")

// PricingConfigDocument is one published version of a tenant's pricing config.
type PricingConfigDocument struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Tenant    string              `bson:"tenant" json:"tenant"`
	Config    model.PricingConfig `bson:"config" json:"config"`
	Active    bool                `bson:"active" json:"active"`
	Version   int                 `bson:"version" json:"version"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
	CreatedBy string              `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// PricingConfigsRepository stores versioned tenant pricing configs.
type PricingConfigsRepository struct {
	collection *mongo.Collection
}

// NewPricingConfigsRepository creates a new pricing configs repository.
func NewPricingConfigsRepository(db *MongoDB) *PricingConfigsRepository {
	return &PricingConfigsRepository{
		collection: db.PricingConfigs,
	}
}

// GetActive returns the tenant's active version, or nil when none is stored.
func (r *PricingConfigsRepository) GetActive(ctx context.Context, tenant string) (*PricingConfigDocument, error) {
	var doc PricingConfigDocument
	err := r.collection.FindOne(ctx, bson.M{"tenant": tenant, "active": true}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create stores cfg as the tenant's next version and makes it the active one.
func (r *PricingConfigsRepository) Create(ctx context.Context, tenant string, cfg model.PricingConfig, createdBy string) (*PricingConfigDocument, error) {
	version, err := r.nextVersion(ctx, tenant)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"tenant": tenant, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}

	cfg.Tenant = tenant
	cfg.Version = version
	doc := PricingConfigDocument{
		ID:        primitive.NewObjectID(),
		Tenant:    tenant,
		Config:    cfg,
		Active:    true,
		Version:   version,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: tenant %s version %d", ErrVersionConflict, tenant, version)
		}
		return nil, err
	}
	return &doc, nil
}

func (r *PricingConfigsRepository) nextVersion(ctx context.Context, tenant string) (int, error) {
	var latest PricingConfigDocument
	err := r.collection.FindOne(
		ctx,
		bson.M{"tenant": tenant},
		options.FindOne().SetSort(bson.M{"version": -1}).SetProjection(bson.M{"version": 1}),
	).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Version + 1, nil
}

// List returns a tenant's versions, newest first.
func (r *PricingConfigsRepository) List(ctx context.Context, tenant string, limit int) ([]PricingConfigDocument, error) {
	opts := options.Find().SetSort(bson.M{"version": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"tenant": tenant}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []PricingConfigDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
