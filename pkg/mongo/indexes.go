package mongo

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"julianmorley.ca/con-plar/retail-assistant/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

// uniqueWhenPresent scopes a unique index to documents carrying field, so
// feed rows that omit it never collide with each other.
func uniqueWhenPresent(field, name string) *options.IndexOptionsBuilder {
	return options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.D{{Key: field, Value: bson.D{{Key: "$exists", Value: true}}}}).
		SetName(name)
}

var requiredIndexes = []IndexConfig{
	{
		CollectionName: InventoryCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "ws_item_id", Value: 1}},
			Options: uniqueWhenPresent("ws_item_id", "idx_inventory_item_unique"),
		},
	},
	{
		CollectionName: InventoryCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "ws_category", Value: 1}},
			Options: options.Index().SetName("idx_inventory_category"),
		},
	},
	// Orders are aggregated per product.
	{
		CollectionName: OrdersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "ws_item_id", Value: 1}},
			Options: options.Index().SetName("idx_orders_item"),
		},
	},
	{
		CollectionName: CouponsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "ws_coupon_code", Value: 1}},
			Options: uniqueWhenPresent("ws_coupon_code", "idx_coupon_code_unique"),
		},
	},
	{
		CollectionName: CouponsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "ws_end_date", Value: -1}},
			Options: options.Index().SetName("idx_coupon_end_date"),
		},
	},
}

// EnsureIndexes creates the indexes the record collections rely on. Existing
// indexes with the same definition are left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	for _, idxConfig := range requiredIndexes {
		if err := createIndex(ctx, db, idxConfig, logger); err != nil {
			return err
		}
	}
	logger.Info("mongodb indexes ensured", slog.Int("count", len(requiredIndexes)))
	return nil
}

func createIndex(ctx context.Context, db *mongo.Database, idxConfig IndexConfig, logger *slog.Logger) error {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	indexName, err := db.Collection(idxConfig.CollectionName).Indexes().CreateOne(ctx, idxConfig.IndexModel)
	if err != nil {
		logger.Error("create index failed",
			slog.String("collection", idxConfig.CollectionName),
			slog.Any("error", err))
		return err
	}
	logger.Debug("index ready", slog.String("collection", idxConfig.CollectionName), slog.String("index", indexName))
	return nil
}
