package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/bookshelf-app/bookshelf-service/internal/errs"
	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	book.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	if _, err := r.books.InsertOne(ctx, book); err != nil {
		return model.Book{}, errors.Wrap(err, "insert book")
	}
	return book, nil
}

func (r *repository) GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error) {
	var book model.Book
	if err := r.books.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, errors.Wrap(err, "find book")
	}
	return book, nil
}

// caseInsensitiveSubstring builds an anchored-nowhere regex so "fiction"
// matches "Science Fiction".
func caseInsensitiveSubstring(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	re := caseInsensitiveSubstring(search)
	return bson.M{"$or": bson.A{
		bson.M{"title": re},
		bson.M{"author": re},
		bson.M{"genre": re},
	}}
}

// listBooksPipeline pages matching books in _id order and, when customerID is
// set, joins each book to that customer's status row to derive the read flag.
func listBooksPipeline(filter bson.M, customerID *primitive.ObjectID, page, limit int) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$skip", Value: pageOffset(page, limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	}

	if customerID == nil {
		return append(pipeline,
			bson.D{{Key: "$addFields", Value: bson.D{{Key: "read", Value: false}}}},
		)
	}

	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: statusesCollection},
			{Key: "let", Value: bson.D{{Key: "bookId", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$bookId", "$$bookId"}}},
					bson.D{{Key: "$eq", Value: bson.A{"$customerId", *customerID}}},
				}}}}}}},
			}},
			{Key: "as", Value: "statuses"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{{Key: "read", Value: bson.D{
			{Key: "$eq", Value: bson.A{
				bson.D{{Key: "$arrayElemAt", Value: bson.A{"$statuses.status", 0}}},
				model.StateRead,
			}},
		}}}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "statuses", Value: 0}}}},
	)
}

func (r *repository) ListBooks(ctx context.Context, search string, customerID *primitive.ObjectID, page, limit int) ([]model.BookWithRead, int64, error) {
	filter := searchFilter(search)
	pipeline := listBooksPipeline(filter, customerID, page, limit)

	var (
		books []model.BookWithRead
		total int64
	)
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		cursor, err := r.books.Aggregate(ctx, pipeline)
		if err != nil {
			return errors.Wrap(err, "aggregate books")
		}
		return cursor.All(ctx, &books)
	})
	gg.Go(func() error {
		var err error
		total, err = r.books.CountDocuments(ctx, filter)
		return errors.Wrap(err, "count books")
	})
	if err := gg.Wait(); err != nil {
		r.log.Error("ListBooks", zap.String("search", search), zap.Error(err))
		return nil, 0, err
	}
	if books == nil {
		books = []model.BookWithRead{}
	}
	return books, total, nil
}

func (r *repository) ListGenres(ctx context.Context) ([]string, error) {
	values, err := r.books.Distinct(ctx, "genre", bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "distinct genres")
	}
	genres := make([]string, 0, len(values))
	for _, v := range values {
		if g, ok := v.(string); ok {
			genres = append(genres, g)
		}
	}
	return genres, nil
}

func (r *repository) ListBooksByGenre(ctx context.Context, genre string, page, limit int) ([]model.Book, int64, error) {
	filter := bson.M{"genre": caseInsensitiveSubstring(genre)}

	var (
		books []model.Book
		total int64
	)
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		opts := optionsFindPage(page, limit)
		cursor, err := r.books.Find(ctx, filter, opts)
		if err != nil {
			return errors.Wrap(err, "find books by genre")
		}
		return cursor.All(ctx, &books)
	})
	gg.Go(func() error {
		var err error
		total, err = r.books.CountDocuments(ctx, filter)
		return errors.Wrap(err, "count books by genre")
	})
	if err := gg.Wait(); err != nil {
		return nil, 0, err
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, total, nil
}
