// internal/store/mongo_store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/javajoker/realestate-backend/internal/models"
)

// MongoCollections names the collections backing a MongoStore.
type MongoCollections struct {
	Properties     string
	Owners         string
	PropertyImages string
	PropertyTraces string
}

func DefaultMongoCollections() MongoCollections {
	return MongoCollections{
		Properties:     "Properties",
		Owners:         "Owners",
		PropertyImages: "PropertyImages",
		PropertyTraces: "PropertyTraces",
	}
}

// Field names follow the documents already in the catalogue collections,
// hence the mixed casing. Each entity has a business id next to _id; the
// business id is what relations reference and what the API exposes, with
// the _id hex standing in when a document has none.
type propertyDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	PropertyID   string             `bson:"idProperty,omitempty"`
	Name         string             `bson:"Name"`
	Address      string             `bson:"Address"`
	Price        Decimal            `bson:"Price"`
	CodeInternal string             `bson:"CodeInternal"`
	Year         int                `bson:"Year"`
	OwnerID      string             `bson:"IdOwner,omitempty"`
}

type ownerDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID  string             `bson:"idOwner"`
	Name     string             `bson:"Name"`
	Address  string             `bson:"Address"`
	Photo    *string            `bson:"Photo,omitempty"`
	Birthday time.Time          `bson:"Birthday"`
}

type imageDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ImageID    string             `bson:"idPropertyImage,omitempty"`
	PropertyID string             `bson:"idProperty"`
	File       string             `bson:"File"`
	Enabled    bool               `bson:"Enabled"`
}

type traceDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	TraceID    string             `bson:"idPropertyTrace,omitempty"`
	PropertyID string             `bson:"idProperty"`
	DateSale   time.Time          `bson:"DateSale"`
	Name       string             `bson:"Name"`
	Value      Decimal            `bson:"Value"`
	Tax        Decimal            `bson:"Tax"`
}

func businessID(id string, objectID primitive.ObjectID) string {
	if id != "" {
		return id
	}
	return objectID.Hex()
}

func (d propertyDocument) toModel() models.Property {
	return models.Property{
		ID:           businessID(d.PropertyID, d.ID),
		Name:         d.Name,
		Address:      d.Address,
		Price:        float64(d.Price),
		CodeInternal: d.CodeInternal,
		Year:         d.Year,
		OwnerID:      d.OwnerID,
	}
}

func (d ownerDocument) toModel() models.Owner {
	return models.Owner{
		ID:       businessID(d.OwnerID, d.ID),
		Name:     d.Name,
		Address:  d.Address,
		Photo:    d.Photo,
		Birthday: d.Birthday,
	}
}

func (d imageDocument) toModel() models.PropertyImage {
	return models.PropertyImage{
		ID:         businessID(d.ImageID, d.ID),
		PropertyID: d.PropertyID,
		File:       d.File,
		Enabled:    d.Enabled,
	}
}

func (d traceDocument) toModel() models.PropertyTrace {
	return models.PropertyTrace{
		ID:         businessID(d.TraceID, d.ID),
		PropertyID: d.PropertyID,
		DateSale:   d.DateSale,
		Name:       d.Name,
		Value:      float64(d.Value),
		Tax:        float64(d.Tax),
	}
}

// MongoStore serves properties from MongoDB collections.
type MongoStore struct {
	properties *mongo.Collection
	owners     *mongo.Collection
	images     *mongo.Collection
	traces     *mongo.Collection
}

func NewMongoStore(db *mongo.Database, collections MongoCollections) *MongoStore {
	return &MongoStore{
		properties: db.Collection(collections.Properties),
		owners:     db.Collection(collections.Owners),
		images:     db.Collection(collections.PropertyImages),
		traces:     db.Collection(collections.PropertyTraces),
	}
}

// propertyFilter builds the conjunction of the criteria predicates. User
// input is quoted so it always matches as a literal substring.
func propertyFilter(criteria models.PropertyCriteria) bson.D {
	filter := bson.D{}

	if criteria.Name != "" {
		filter = append(filter, bson.E{Key: "Name", Value: primitive.Regex{Pattern: regexp.QuoteMeta(criteria.Name), Options: "i"}})
	}
	if criteria.Address != "" {
		filter = append(filter, bson.E{Key: "Address", Value: primitive.Regex{Pattern: regexp.QuoteMeta(criteria.Address), Options: "i"}})
	}

	price := bson.D{}
	if criteria.MinPrice != nil {
		price = append(price, bson.E{Key: "$gte", Value: *criteria.MinPrice})
	}
	if criteria.MaxPrice != nil {
		price = append(price, bson.E{Key: "$lte", Value: *criteria.MaxPrice})
	}
	if len(price) > 0 {
		filter = append(filter, bson.E{Key: "Price", Value: price})
	}

	return filter
}

func pageOptions(criteria models.PropertyCriteria) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(criteria.Offset())).
		SetLimit(int64(criteria.PageSize))
}

func (s *MongoStore) FindFiltered(ctx context.Context, criteria models.PropertyCriteria) ([]models.Property, int64, error) {
	criteria = criteria.WithDefaults()
	filter := propertyFilter(criteria)

	total, err := s.properties.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	properties, err := s.findProperties(ctx, filter, pageOptions(criteria))
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (s *MongoStore) FindAll(ctx context.Context, criteria models.PropertyCriteria) ([]models.Property, error) {
	return s.findProperties(ctx, propertyFilter(criteria), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (s *MongoStore) findProperties(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]models.Property, error) {
	cursor, err := s.properties.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	var docs []propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	properties := make([]models.Property, 0, len(docs))
	for _, doc := range docs {
		properties = append(properties, doc.toModel())
	}
	return properties, nil
}

// FindByID matches the business id, or the _id when id is an ObjectID hex.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Property, error) {
	if id == "" {
		return nil, nil
	}

	var doc propertyDocument
	if err := s.properties.FindOne(ctx, propertyIDFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch property %s: %w", id, err)
	}

	property := doc.toModel()
	return &property, nil
}

func propertyIDFilter(id string) bson.D {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bson.D{{Key: "idProperty", Value: id}}
	}
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "idProperty", Value: id}},
		bson.D{{Key: "_id", Value: objectID}},
	}}}
}

func (s *MongoStore) FindOwnersByIDs(ctx context.Context, ids []string) ([]models.Owner, error) {
	owners := []models.Owner{}
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return owners, nil
	}

	cursor, err := s.owners.Find(ctx, bson.D{{Key: "idOwner", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owners: %w", err)
	}

	var docs []ownerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode owners: %w", err)
	}
	for _, doc := range docs {
		owners = append(owners, doc.toModel())
	}
	return owners, nil
}

func (s *MongoStore) FindEnabledImagesByPropertyIDs(ctx context.Context, propertyIDs []string) ([]models.PropertyImage, error) {
	images := []models.PropertyImage{}
	propertyIDs = uniqueNonEmpty(propertyIDs)
	if len(propertyIDs) == 0 {
		return images, nil
	}

	filter := bson.D{
		{Key: "idProperty", Value: bson.D{{Key: "$in", Value: propertyIDs}}},
		{Key: "Enabled", Value: true},
	}
	cursor, err := s.images.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property images: %w", err)
	}

	var docs []imageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode property images: %w", err)
	}
	for _, doc := range docs {
		images = append(images, doc.toModel())
	}
	return images, nil
}

func (s *MongoStore) FindTracesByPropertyIDs(ctx context.Context, propertyIDs []string) ([]models.PropertyTrace, error) {
	traces := []models.PropertyTrace{}
	propertyIDs = uniqueNonEmpty(propertyIDs)
	if len(propertyIDs) == 0 {
		return traces, nil
	}

	cursor, err := s.traces.Find(ctx,
		bson.D{{Key: "idProperty", Value: bson.D{{Key: "$in", Value: propertyIDs}}}},
		options.Find().SetSort(bson.D{{Key: "DateSale", Value: -1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property traces: %w", err)
	}

	var docs []traceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode property traces: %w", err)
	}
	for _, doc := range docs {
		traces = append(traces, doc.toModel())
	}
	return traces, nil
}

// EnsureIndexes creates the lookup indexes used by the relation queries.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection *mongo.Collection
		keys       bson.D
	}{
		{s.properties, bson.D{{Key: "idProperty", Value: 1}}},
		{s.properties, bson.D{{Key: "IdOwner", Value: 1}}},
		{s.properties, bson.D{{Key: "Price", Value: 1}}},
		{s.owners, bson.D{{Key: "idOwner", Value: 1}}},
		{s.images, bson.D{{Key: "idProperty", Value: 1}, {Key: "Enabled", Value: 1}}},
		{s.traces, bson.D{{Key: "idProperty", Value: 1}, {Key: "DateSale", Value: -1}}},
	}

	for _, index := range indexes {
		if _, err := index.collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: index.keys}); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", index.collection.Name(), err)
		}
	}
	return nil
}

func (s *MongoStore) NewID() string {
	return primitive.NewObjectID().Hex()
}

func (s *MongoStore) SeedDataset(ctx context.Context, dataset models.Dataset) error {
	if len(dataset.Owners) > 0 {
		docs := make([]interface{}, 0, len(dataset.Owners))
		for _, o := range dataset.Owners {
			docs = append(docs, ownerDocument{
				OwnerID:  o.ID,
				Name:     o.Name,
				Address:  o.Address,
				Photo:    o.Photo,
				Birthday: o.Birthday,
			})
		}
		if _, err := s.owners.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert owners: %w", err)
		}
	}

	if len(dataset.Properties) > 0 {
		docs := make([]interface{}, 0, len(dataset.Properties))
		for _, p := range dataset.Properties {
			id, err := primitive.ObjectIDFromHex(p.ID)
			if err != nil {
				return fmt.Errorf("invalid property id %q: %w", p.ID, err)
			}
			docs = append(docs, propertyDocument{
				ID:           id,
				PropertyID:   p.ID,
				Name:         p.Name,
				Address:      p.Address,
				Price:        Decimal(p.Price),
				CodeInternal: p.CodeInternal,
				Year:         p.Year,
				OwnerID:      p.OwnerID,
			})
		}
		if _, err := s.properties.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert properties: %w", err)
		}
	}

	if len(dataset.Images) > 0 {
		docs := make([]interface{}, 0, len(dataset.Images))
		for _, i := range dataset.Images {
			docs = append(docs, imageDocument{
				ImageID:    i.ID,
				PropertyID: i.PropertyID,
				File:       i.File,
				Enabled:    i.Enabled,
			})
		}
		if _, err := s.images.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert property images: %w", err)
		}
	}

	if len(dataset.Traces) > 0 {
		docs := make([]interface{}, 0, len(dataset.Traces))
		for _, t := range dataset.Traces {
			docs = append(docs, traceDocument{
				TraceID:    t.ID,
				PropertyID: t.PropertyID,
				DateSale:   t.DateSale,
				Name:       t.Name,
				Value:      Decimal(t.Value),
				Tax:        Decimal(t.Tax),
			})
		}
		if _, err := s.traces.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert property traces: %w", err)
		}
	}

	return nil
}

func (s *MongoStore) Reset(ctx context.Context) error {
	for _, collection := range []*mongo.Collection{s.traces, s.images, s.properties, s.owners} {
		if _, err := collection.DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("failed to reset %s: %w", collection.Name(), err)
		}
	}
	return nil
}
