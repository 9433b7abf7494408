package repository

import (
	"context"

	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// toggleUpdate is an aggregation-pipeline update: inserting a missing row
// yields StateRead, an existing row flips. Single round trip, so two
// concurrent toggles for the same pair cannot both observe "absent".
func toggleUpdate(customerID, bookID primitive.ObjectID) bson.A {
	return bson.A{
		bson.M{"$set": bson.M{
			"customerId": customerID,
			"bookId":     bookID,
			"status": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", model.StateRead}},
				model.StateUnread,
				model.StateRead,
			}},
			"createdAt": bson.M{"$ifNull": bson.A{"$createdAt", "$$NOW"}},
			"updatedAt": "$$NOW",
		}},
	}
}

func (r *repository) ToggleStatus(ctx context.Context, customerID, bookID primitive.ObjectID) (model.ReadStatus, error) {
	filter := bson.M{"customerId": customerID, "bookId": bookID}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var status model.ReadStatus
	err := r.statuses.FindOneAndUpdate(ctx, filter, toggleUpdate(customerID, bookID), opts).Decode(&status)
	if err != nil {
		r.log.Error("ToggleStatus",
			zap.String("customerId", customerID.Hex()),
			zap.String("bookId", bookID.Hex()),
			zap.Error(err))
		return model.ReadStatus{}, errors.Wrap(err, "toggle status")
	}
	return status, nil
}

// statusBooksPipeline pages a customer's status rows in the requested state
// and joins each to its book. Rows whose book no longer exists are dropped by
// the unwind.
func statusBooksPipeline(filter bson.M, page, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$skip", Value: pageOffset(page, limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: booksCollection},
			{Key: "localField", Value: "bookId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "book"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$book"}}}},
		bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$book"}}}},
	}
}

func (r *repository) ListStatusBooks(ctx context.Context, customerID primitive.ObjectID, state model.ReadState, page, limit int) ([]model.Book, int64, error) {
	filter := bson.M{"customerId": customerID, "status": state}
	pipeline := statusBooksPipeline(filter, page, limit)

	var (
		books []model.Book
		total int64
	)
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		cursor, err := r.statuses.Aggregate(ctx, pipeline)
		if err != nil {
			return errors.Wrap(err, "aggregate status books")
		}
		return cursor.All(ctx, &books)
	})
	gg.Go(func() error {
		var err error
		total, err = r.statuses.CountDocuments(ctx, filter)
		return errors.Wrap(err, "count statuses")
	})
	if err := gg.Wait(); err != nil {
		return nil, 0, err
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, total, nil
}
