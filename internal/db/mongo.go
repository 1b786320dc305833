package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aph138/otpd/internal/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	OTPCollection = "otp"
)

var _ Database = (*MyMongo)(nil)
var _ Database = (*Memory)(nil)

// MyMongo defines a helper struct for connecting to mongodb database
type MyMongo struct {
	db      *mongo.Database
	timeout time.Duration
}

// Timeout bounds every operation on top of the caller's context.
func NewMongo(address, name string, timeout time.Duration, opt *options.ClientOptions) (*MyMongo, error) {
	if opt == nil {
		opt = options.Client().ApplyURI(address)
	} else {
		opt.ApplyURI(address)
	}
	client, err := mongo.Connect(opt)
	if err != nil {
		return nil, fmt.Errorf("err when connecting to db at %s: %w", address, err)
	}

	// check for connection
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("err when pinging db: %w", err)
	}
	db := client.Database(name)
	if err := createIndices(ctx, db); err != nil {
		return nil, fmt.Errorf("err when creating indices: %w", err)
	}
	return &MyMongo{
		db:      db,
		timeout: timeout,
	}, nil
}

// create a compound index serving both the latest-record lookup and
// the delete filters
func createIndices(ctx context.Context, db *mongo.Database) error {
	otpIndexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "purpose", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index(),
	}
	_, err := db.Collection(OTPCollection).Indexes().CreateOne(ctx, otpIndexModel)
	if err != nil {
		return fmt.Errorf("err when creating otp index: %w", err)
	}
	return nil
}

func toBSON(filter Filter) bson.M {
	result := bson.M{}
	if len(filter.UserID) > 0 {
		result["userId"] = filter.UserID
	}
	if len(filter.Purpose) > 0 {
		result["purpose"] = filter.Purpose
	}
	return result
}

func (d *MyMongo) InsertOne(ctx context.Context, col string, doc any, opts ...options.Lister[options.InsertOneOptions]) (*bson.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	result, err := d.db.Collection(col).InsertOne(ctx, doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("err when inserting one to %s: %w", col, err)
	}
	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return &id, nil
}

func (d *MyMongo) FindOne(ctx context.Context, col string, filter, output any, opts ...options.Lister[options.FindOneOptions]) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	if err := d.db.Collection(col).FindOne(ctx, filter, opts...).Decode(output); err != nil {
		return fmt.Errorf("err when finding one from %s: %w", col, err)
	}
	return nil
}

func (d *MyMongo) Delete(ctx context.Context, col string, filter any, opts ...options.Lister[options.DeleteManyOptions]) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	result, err := d.db.Collection(col).DeleteMany(ctx, filter, opts...)
	if err != nil {
		return 0, fmt.Errorf("err when deleting from %s: %w", col, err)
	}
	return result.DeletedCount, nil
}

func (d *MyMongo) Insert(ctx context.Context, record *entity.OTP) error {
	id, err := d.InsertOne(ctx, OTPCollection, record)
	if err != nil {
		return fmt.Errorf("err when saving otp with mongodb: %w", err)
	}
	record.ID = *id
	return nil
}

func (d *MyMongo) FindLatest(ctx context.Context, filter Filter) (*entity.OTP, error) {
	var record entity.OTP
	findOption := options.FindOne().SetSort(bson.D{bson.E{Key: "createdAt", Value: -1}})
	err := d.FindOne(ctx, OTPCollection, toBSON(filter), &record, findOption)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("err when finding latest otp with mongodb: %w", err)
	}
	return &record, nil
}

func (d *MyMongo) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	return d.Delete(ctx, OTPCollection, toBSON(filter))
}

func (d *MyMongo) Close(ctx context.Context) error {
	return d.db.Client().Disconnect(ctx)
}
