package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
	"julianmorley.ca/con-plar/retail-assistant/pkg/source"
)

const (
	InventoryCollection = "inventory"
	OrdersCollection    = "orders"
	CouponsCollection   = "coupons"
)

// Source reads the three record collections from a MongoDB database. The
// documents carry the same ws_* field names as the HTTP feeds.
type Source struct {
	db *mongo.Database
}

func NewSource(db *mongo.Database) *Source {
	return &Source{db: db}
}

func (s *Source) Fetch(ctx context.Context) (*source.Snapshot, error) {
	snap := &source.Snapshot{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Inventory, err = s.findAll(ctx, InventoryCollection)
		return err
	})
	g.Go(func() (err error) {
		snap.Orders, err = s.findAll(ctx, OrdersCollection)
		return err
	})
	g.Go(func() (err error) {
		snap.Coupons, err = s.findAll(ctx, CouponsCollection)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Source) findAll(ctx context.Context, collection string) ([]models.Row, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	rows := make([]models.Row, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, documentToRow(doc))
	}
	return rows, nil
}

// documentToRow converts BSON-specific value types into the plain Go values
// the normalizer understands.
func documentToRow(doc bson.M) models.Row {
	row := make(models.Row, len(doc))
	for key, value := range doc {
		row[key] = convertValue(value)
	}
	return row
}

func convertValue(value any) any {
	switch v := value.(type) {
	case bson.DateTime:
		return v.Time().UTC()
	case bson.Decimal128:
		return v.String()
	case bson.ObjectID:
		return v.Hex()
	case bson.M:
		return documentToRow(v)
	case bson.D:
		row := make(models.Row, len(v))
		for _, elem := range v {
			row[elem.Key] = convertValue(elem.Value)
		}
		return row
	case bson.A:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = convertValue(item)
		}
		return out
	default:
		return value
	}
}
