package designer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	templatesCollection = "email_designer_templates"
	versionsCollection  = "email_designer_versions"
)

// MongoTemplateStore is the production TemplateStore backed by a MongoDB
// collection. A unique sparse index on templateReferenceId is the
// authoritative uniqueness arbiter; duplicate-key violations surface as
// ErrReferenceIDTaken.
type MongoTemplateStore struct {
	col *mongo.Collection
}

// NewMongoTemplateStore creates a template store on the given database.
func NewMongoTemplateStore(db *mongo.Database) *MongoTemplateStore {
	return &MongoTemplateStore{col: db.Collection(templatesCollection)}
}

// EnsureIndexes creates the unique sparse reference-id index. Call once at
// startup.
func (s *MongoTemplateStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "templateReferenceId", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return fmt.Errorf("create template indexes: %w", err)
	}
	return nil
}

func (s *MongoTemplateStore) Create(ctx context.Context, tpl Template) (*Template, error) {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	if _, err := s.col.InsertOne(ctx, tpl); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrReferenceIDTaken
		}
		return nil, fmt.Errorf("insert template: %w", err)
	}
	return &tpl, nil
}

func (s *MongoTemplateStore) Get(ctx context.Context, id string) (*Template, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoTemplateStore) GetByReferenceID(ctx context.Context, refID int) (*Template, error) {
	return s.findOne(ctx, bson.M{"templateReferenceId": refID})
}

func (s *MongoTemplateStore) GetByReferenceIDExcluding(ctx context.Context, refID int, excludeID string) (*Template, error) {
	return s.findOne(ctx, bson.M{
		"templateReferenceId": refID,
		"_id":                 bson.M{"$ne": excludeID},
	})
}

func (s *MongoTemplateStore) List(ctx context.Context) ([]Template, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	var out []Template
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	return out, nil
}

func (s *MongoTemplateStore) Update(ctx context.Context, id string, tpl Template) (*Template, error) {
	update := bson.M{
		"$set": bson.M{
			"design":    tpl.Design,
			"name":      tpl.Name,
			"subject":   tpl.Subject,
			"bodyHtml":  tpl.BodyHTML,
			"bodyText":  tpl.BodyText,
			"tags":      tpl.Tags,
			"updatedAt": time.Now(),
		},
	}
	if tpl.ReferenceID != nil {
		update["$set"].(bson.M)["templateReferenceId"] = *tpl.ReferenceID
	} else {
		update["$unset"] = bson.M{"templateReferenceId": ""}
	}

	var updated Template
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTemplateNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrReferenceIDTaken
		}
		return nil, fmt.Errorf("update template: %w", err)
	}
	return &updated, nil
}

func (s *MongoTemplateStore) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *MongoTemplateStore) findOne(ctx context.Context, filter bson.M) (*Template, error) {
	var tpl Template
	if err := s.col.FindOne(ctx, filter).Decode(&tpl); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("find template: %w", err)
	}
	return &tpl, nil
}

// MongoVersionStore is the production VersionStore backed by a MongoDB
// collection.
type MongoVersionStore struct {
	col *mongo.Collection
}

// NewMongoVersionStore creates a version store on the given database.
func NewMongoVersionStore(db *mongo.Database) *MongoVersionStore {
	return &MongoVersionStore{col: db.Collection(versionsCollection)}
}

// EnsureIndexes creates the template-scoped listing index. Call once at
// startup.
func (s *MongoVersionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "templateId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create version indexes: %w", err)
	}
	return nil
}

func (s *MongoVersionStore) Create(ctx context.Context, v Version) (*Version, error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	if _, err := s.col.InsertOne(ctx, v); err != nil {
		return nil, fmt.Errorf("insert version: %w", err)
	}
	return &v, nil
}

func (s *MongoVersionStore) Get(ctx context.Context, id string) (*Version, error) {
	var v Version
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("find version: %w", err)
	}
	return &v, nil
}

func (s *MongoVersionStore) ListByTemplate(ctx context.Context, templateID string) ([]Version, error) {
	cursor, err := s.col.Find(ctx, bson.M{"templateId": templateID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "versionNumber", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	var out []Version
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode versions: %w", err)
	}
	return out, nil
}

func (s *MongoVersionStore) CountByTemplate(ctx context.Context, templateID string) (int, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"templateId": templateID})
	if err != nil {
		return 0, fmt.Errorf("count versions: %w", err)
	}
	return int(n), nil
}

func (s *MongoVersionStore) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete version: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrVersionNotFound
	}
	return nil
}

func (s *MongoVersionStore) DeleteByTemplate(ctx context.Context, templateID string) error {
	if _, err := s.col.DeleteMany(ctx, bson.M{"templateId": templateID}); err != nil {
		return fmt.Errorf("delete versions: %w", err)
	}
	return nil
}
