package listing

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// CollectionName is the MongoDB collection holding listings.
const CollectionName = "listings"

// mongoImage is the embedded image document, {url, filename}.
type mongoImage struct {
	URL      string `bson:"url"`
	Filename string `bson:"filename,omitempty"`
}

// mongoListing is the document shape stored in MongoDB.
type mongoListing struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Image       mongoImage         `bson:"image"`
	Price       *float64           `bson:"price,omitempty"`
	Location    string             `bson:"location"`
	Country     string             `bson:"country"`
}

func (d *mongoListing) toListing() *Listing {
	return &Listing{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Image:       d.Image.URL,
		Price:       d.Price,
		Location:    d.Location,
		Country:     d.Country,
	}
}

// MongoRepository stores listings in a MongoDB collection.
type MongoRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoRepository creates a repository over the listings collection of dbName.
func NewMongoRepository(client *mongo.Client, dbName string) *MongoRepository {
	return &MongoRepository{
		client: client,
		coll:   client.Database(dbName).Collection(CollectionName),
	}
}

// List returns every listing in natural order.
func (r *MongoRepository) List(ctx context.Context) ([]*Listing, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}

	var docs []mongoListing
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding listings: %w", err)
	}

	listings := make([]*Listing, 0, len(docs))
	for i := range docs {
		listings = append(listings, docs[i].toListing())
	}
	return listings, nil
}

// Get returns a listing by its hex ObjectID.
func (r *MongoRepository) Get(ctx context.Context, id string) (*Listing, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc mongoListing
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing %s: %w", id, err)
	}

	return doc.toListing(), nil
}

// Create inserts a new listing document.
func (r *MongoRepository) Create(ctx context.Context, f Fields) (*Listing, error) {
	l := newListing(f)
	doc := mongoListing{
		ID:          primitive.NewObjectID(),
		Title:       l.Title,
		Description: l.Description,
		Image:       mongoImage{URL: l.Image},
		Price:       l.Price,
		Location:    l.Location,
		Country:     l.Country,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("inserting listing: %w", err)
	}

	return doc.toListing(), nil
}

// Update sets the supplied fields and returns the document after the update.
func (r *MongoRepository) Update(ctx context.Context, id string, f Fields) (*Listing, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := updateDocument(f)
	if len(update) == 0 {
		return r.Get(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoListing
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating listing %s: %w", id, err)
	}

	return doc.toListing(), nil
}

// Delete removes a listing. A missing document is not an error.
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("deleting listing %s: %w", id, err)
	}
	return nil
}

// Ping checks the primary is reachable.
func (r *MongoRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("pinging mongodb: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// updateDocument builds a $set/$unset update for the supplied fields.
// It returns an empty document when nothing was supplied. Only image.url
// is set so an existing filename survives.
func updateDocument(f Fields) bson.D {
	set := bson.D{}
	if f.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *f.Title})
	}
	if f.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *f.Description})
	}
	if f.Image != nil {
		set = append(set, bson.E{Key: "image.url", Value: *f.Image})
	}
	if f.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *f.Price})
	}
	if f.Location != nil {
		set = append(set, bson.E{Key: "location", Value: *f.Location})
	}
	if f.Country != nil {
		set = append(set, bson.E{Key: "country", Value: *f.Country})
	}

	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if f.ClearPrice && f.Price == nil {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "price", Value: ""}}})
	}
	return update
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return oid, nil
}
