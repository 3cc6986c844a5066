package mg

import (
	"context"
	"fmt"

	"glycostats/engine/defs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const DeviceDataCollection = "deviceData"

type DataStore interface {
	ReadData(ctx context.Context, start, end int64) ([]map[string]interface{}, error)
	WriteData(ctx context.Context, d defs.Datum) (*mongo.UpdateResult, error)
}

type MongoStore struct {
	Client *mongo.Client
	Logger *zap.Logger

	DBName string
}

func New(ctx context.Context, cfg defs.MongoConfig, logger *zap.Logger) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	mongoClient, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mongo: %w", err)
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = defs.DefaultDB
	}

	return &MongoStore{
		Client: mongoClient,
		Logger: logger,
		DBName: dbName,
	}, nil
}

func (ms *MongoStore) InsertIfNew(ctx context.Context, collection string, filter bson.M, doc interface{}) (*mongo.UpdateResult, error) {
	ms.Logger.Debug(
		"inserting document",
		zap.String("collection", collection),
		zap.Any("filter", filter),
	)

	res, err := ms.Client.
		Database(ms.DBName).
		Collection(collection).
		UpdateOne(ctx, filter,
			bson.M{"$setOnInsert": doc},
			options.Update().SetUpsert(true),
		)
	if err != nil {
		return nil, fmt.Errorf("unable to insert if new: %w", err)
	}

	return res, nil
}

// ReadData returns the raw records of [start, end) sorted by epoch, plus
// every pump settings record whatever its date.
func (ms *MongoStore) ReadData(ctx context.Context, start, end int64) ([]map[string]interface{}, error) {
	ms.Logger.Debug(
		"reading records",
		zap.String("collection", DeviceDataCollection),
		zap.Int64("start", start),
		zap.Int64("end", end),
	)

	findOptions := options.Find().
		SetSort(bson.D{primitive.E{Key: "epoch", Value: 1}}).
		SetProjection(bson.M{"_id": 0})

	cur, err := ms.Client.
		Database(ms.DBName).
		Collection(DeviceDataCollection).
		Find(ctx, bson.M{
			"$or": bson.A{
				bson.M{"epoch": bson.M{"$gte": start, "$lt": end}},
				bson.M{"type": string(defs.PumpSettingsType)},
			},
		}, findOptions)
	if err != nil {
		ms.Logger.Debug(
			"unable to read records",
			zap.Int64("start", start),
			zap.Int64("end", end),
			zap.Error(err),
		)
		return nil, fmt.Errorf("unable to read records: %w", err)
	}

	var raws []map[string]interface{}
	if err := cur.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("unable to decode records: %w", err)
	}
	return raws, nil
}

// WriteData stores d unless a record with the same id exists.
func (ms *MongoStore) WriteData(ctx context.Context, d defs.Datum) (*mongo.UpdateResult, error) {
	return ms.InsertIfNew(ctx, DeviceDataCollection, bson.M{"id": d.GetBase().ID}, d)
}
