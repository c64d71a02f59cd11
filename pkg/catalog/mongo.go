package catalog

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/exhibit/pkg/errors"
)

// Collection names read by MongoSource.
const (
	CollectionArtworks  = "artworks"
	CollectionCritiques = "critiques"
	CollectionPersonas  = "personas"
)

// DefaultDatabase is used when the URI names no database.
const DefaultDatabase = "exhibit"

const mongoTimeout = 10 * time.Second

// MongoSource reads a catalog from three MongoDB collections. Artwork
// documents are returned in ascending position order.
type MongoSource struct {
	URI      string
	Database string
}

// Load connects, reads all three collections and disconnects.
func (m *MongoSource) Load(ctx context.Context) (*Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(m.URI)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(m.database())

	var c Catalog
	byPosition := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	if err := findAll(ctx, db.Collection(CollectionArtworks), &c.Artworks, byPosition); err != nil {
		return nil, err
	}
	if err := findAll(ctx, db.Collection(CollectionCritiques), &c.Critiques); err != nil {
		return nil, err
	}
	if err := findAll(ctx, db.Collection(CollectionPersonas), &c.Personas); err != nil {
		return nil, err
	}

	c.Sort()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *MongoSource) database() string {
	if m.Database != "" {
		return m.Database
	}
	if u, err := url.Parse(m.URI); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return DefaultDatabase
}

func findAll(ctx context.Context, coll *mongo.Collection, out any, opts ...*options.FindOptions) error {
	cur, err := coll.Find(ctx, bson.D{}, opts...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "query %s", coll.Name())
	}
	if err := cur.All(ctx, out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode %s", coll.Name())
	}
	return nil
}
