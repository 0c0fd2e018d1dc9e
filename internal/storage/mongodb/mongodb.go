// Package mongodb provides the MongoDB-backed implementation of the
// storage.Storage interface. It is the production datastore: records are
// documents in a single collection, identified by driver-generated
// ObjectIDs.
package mongodb

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/aanand-mishra/records-api/internal/config"
	"github.com/aanand-mishra/records-api/internal/types"
)

// Mongo holds the client (a managed connection pool) and the records
// collection. Both are safe for concurrent use.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// document is the on-disk shape of a record.
//
// Every field is kept raw. Documents written by earlier versions of the
// service carry whatever the client sent: a numeric name, a string age,
// an _id that is not an ObjectID. One odd document must not make the
// whole collection undecodable.
type document struct {
	ID   bson.RawValue `bson:"_id"`
	Name bson.RawValue `bson:"name"`
	Age  bson.RawValue `bson:"age"`
}

// New connects to the server described by cfg.Mongo and verifies the
// connection with a ping. The connect step is bounded by
// cfg.Mongo.ConnectTimeout.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI()).
		SetConnectTimeout(cfg.Mongo.ConnectTimeout).
		SetServerSelectionTimeout(cfg.Mongo.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb.New: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb.New: ping: %w", err)
	}

	return &Mongo{
		client:     client,
		collection: client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection),
	}, nil
}

// CreateRecord inserts one document and returns its ObjectID as hex.
func (m *Mongo) CreateRecord(ctx context.Context, name string, age float64) (string, error) {
	res, err := m.collection.InsertOne(ctx, bson.D{
		{Key: "name", Value: name},
		{Key: "age", Value: age},
	})
	if err != nil {
		return "", fmt.Errorf("CreateRecord: insert: %w", err)
	}

	return idString(res.InsertedID), nil
}

// GetRecords returns the whole collection. No sort is applied.
func (m *Mongo) GetRecords(ctx context.Context) ([]types.Record, error) {
	cursor, err := m.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("GetRecords: find: %w", err)
	}

	docs := make([]document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("GetRecords: decode: %w", err)
	}

	return lo.Map(docs, func(d document, _ int) types.Record {
		return d.record()
	}), nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (d document) record() types.Record {
	return types.Record{
		ID:   textValue(d.ID),
		Name: textValue(d.Name),
		Age:  ageValue(d.Age),
	}
}

// ageValue reads a stored age as a number. Numeric BSON types convert
// directly, numeric strings are parsed, anything else reads as 0.
func ageValue(v bson.RawValue) float64 {
	switch v.Type {
	case bsontype.Double:
		return v.Double()
	case bsontype.Int32:
		return float64(v.Int32())
	case bsontype.Int64:
		return float64(v.Int64())
	case bsontype.Decimal128:
		f, err := strconv.ParseFloat(v.Decimal128().String(), 64)
		if err != nil {
			return 0
		}
		return f
	case bsontype.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.StringValue()), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// textValue renders a stored id or name as text. ObjectIDs become hex,
// scalars their plain form, null or missing values "". Anything else
// falls back to its extended JSON.
func textValue(v bson.RawValue) string {
	switch v.Type {
	case 0, bsontype.Null, bsontype.Undefined:
		return ""
	case bsontype.String:
		return v.StringValue()
	case bsontype.ObjectID:
		return v.ObjectID().Hex()
	case bsontype.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bsontype.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case bsontype.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case bsontype.Decimal128:
		return v.Decimal128().String()
	case bsontype.Boolean:
		return strconv.FormatBool(v.Boolean())
	default:
		return v.String()
	}
}

func idString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
