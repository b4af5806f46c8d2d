package mongo

import (
	"context"
	"errors"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const logCollectionName = "log_entries"

// logDocument is the stored shape of a log entry. The entry identifier is a
// separate field from Mongo's _id so imported entries keep their caller
// supplied IDs.
type logDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Owner     string             `bson:"owner"`
	EntryID   string             `bson:"entryId"`
	Date      string             `bson:"date"`
	Exercise  string             `bson:"exercise"`
	Weight    float64            `bson:"weight"`
	Reps      int                `bson:"reps"`
	Note      string             `bson:"note,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d logDocument) toEntry() domain.LogEntry {
	return domain.LogEntry{
		ID:        d.EntryID,
		Date:      d.Date,
		Exercise:  domain.NormalizeExercise(d.Exercise),
		Weight:    d.Weight,
		Reps:      d.Reps,
		Note:      d.Note,
		CreatedAt: d.CreatedAt,
	}
}

// mongoLogRepository implements repository.LogRepository with per-user rows.
type mongoLogRepository struct {
	collection *mongo.Collection
}

// NewMongoLogRepository creates a new log entry repository.
func NewMongoLogRepository(db *mongo.Database) repository.LogRepository {
	return &mongoLogRepository{
		collection: db.Collection(logCollectionName),
	}
}

// LoadAll retrieves every entry of the owner, date descending, most recently
// created first within a date.
func (r *mongoLogRepository) LoadAll(ctx context.Context, owner string) ([]domain.LogEntry, error) {
	filter := bson.M{"owner": owner}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []logDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]domain.LogEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, d.toEntry())
	}
	return entries, nil
}

// Insert stores a single entry for the owner.
func (r *mongoLogRepository) Insert(ctx context.Context, owner string, entry domain.LogEntry) (domain.LogEntry, error) {
	if owner == "" || entry.ID == "" {
		return domain.LogEntry{}, errors.New("log entry requires owner and id")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	doc := logDocument{
		Owner:     owner,
		EntryID:   entry.ID,
		Date:      entry.Date,
		Exercise:  string(entry.Exercise),
		Weight:    entry.Weight,
		Reps:      entry.Reps,
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return domain.LogEntry{}, err
	}
	return entry, nil
}

// InsertBatch stores the surviving entries of a legacy snapshot migration
// in a single call.
func (r *mongoLogRepository) InsertBatch(ctx context.Context, owner string, entries []domain.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		createdAt := entry.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		docs = append(docs, logDocument{
			Owner:     owner,
			EntryID:   entry.ID,
			Date:      entry.Date,
			Exercise:  string(entry.Exercise),
			Weight:    entry.Weight,
			Reps:      entry.Reps,
			Note:      entry.Note,
			CreatedAt: createdAt,
		})
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// ReplaceBatch upserts the entries in one ordered bulk write keyed by
// owner and entry identifier, so an incoming entry overwrites the stored
// one with the same ID.
func (r *mongoLogRepository) ReplaceBatch(ctx context.Context, owner string, entries []domain.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(entries))
	for _, entry := range entries {
		createdAt := entry.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"owner": owner, "entryId": entry.ID}).
			SetReplacement(logDocument{
				Owner:     owner,
				EntryID:   entry.ID,
				Date:      entry.Date,
				Exercise:  string(entry.Exercise),
				Weight:    entry.Weight,
				Reps:      entry.Reps,
				Note:      entry.Note,
				CreatedAt: createdAt,
			}).
			SetUpsert(true))
	}

	_, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	return err
}

// Delete removes one entry by identifier, scoped to the owner.
func (r *mongoLogRepository) Delete(ctx context.Context, owner string, id string) error {
	filter := bson.M{"owner": owner, "entryId": id}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureLogIndexes creates necessary indexes. Call during startup.
func EnsureLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "entryId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
