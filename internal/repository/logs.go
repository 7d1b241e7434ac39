package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogsRepository stores request and audit log entries in the logs collection.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository returns a repository over db's logs collection.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// Insert stores entries, assigning IDs and timestamps where missing. A failed
// entry in a batch does not stop the rest.
func (r *LogsRepository) Insert(ctx context.Context, entries ...*model.LogEntry) error {
	switch len(entries) {
	case 0:
		return nil
	case 1:
		_, err := r.collection.InsertOne(ctx, stamp(entries[0]))
		return err
	}

	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = stamp(e)
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

func stamp(e *model.LogEntry) *model.LogEntry {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return e
}

// Find returns the entries matching q, newest first.
func (r *LogsRepository) Find(ctx context.Context, q model.LogQuery) ([]model.LogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}

	cursor, err := r.collection.Find(ctx, logFilter(q), opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	entries := []model.LogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns how many entries match q, ignoring its limit and offset.
func (r *LogsRepository) Count(ctx context.Context, q model.LogQuery) (int64, error) {
	return r.collection.CountDocuments(ctx, logFilter(q))
}

func logFilter(q model.LogQuery) bson.M {
	filter := bson.M{}
	for field, v := range map[string]string{
		"tenant":      q.Tenant,
		"action_type": q.ActionType,
		"level":       q.Level,
		"request_id":  q.RequestID,
		"method":      q.Method,
	} {
		if v != "" {
			filter[field] = v
		}
	}
	if q.Path != "" {
		filter["path"] = bson.M{"$regex": regexp.QuoteMeta(q.Path), "$options": "i"}
	}

	window := bson.M{}
	if !q.Since.IsZero() {
		window["$gte"] = q.Since
	}
	if !q.Until.IsZero() {
		window["$lte"] = q.Until
	}
	if len(window) > 0 {
		filter["timestamp"] = window
	}
	return filter
}
