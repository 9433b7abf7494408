package repository

import (
	"context"
	"time"

	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Config struct {
	URI      string `json:"-" envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database string `envconfig:"MONGO_DATABASE" default:"bookshelf"`
}

const (
	booksCollection    = "books"
	usersCollection    = "users"
	statusesCollection = "user_book_statuses"
)

const connectTimeout = 10 * time.Second

func NewMongoDB(ctx context.Context, cfg *Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "mongo ping")
	}
	return client.Database(cfg.Database), nil
}

type Repository interface {
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error)
	ListBooks(ctx context.Context, search string, customerID *primitive.ObjectID, page, limit int) ([]model.BookWithRead, int64, error)
	ListGenres(ctx context.Context) ([]string, error)
	ListBooksByGenre(ctx context.Context, genre string, page, limit int) ([]model.Book, int64, error)

	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	ToggleStatus(ctx context.Context, customerID, bookID primitive.ObjectID) (model.ReadStatus, error)
	ListStatusBooks(ctx context.Context, customerID primitive.ObjectID, state model.ReadState, page, limit int) ([]model.Book, int64, error)
}

type repository struct {
	books    *mongo.Collection
	users    *mongo.Collection
	statuses *mongo.Collection
	log      *zap.Logger
}

func NewRepository(db *mongo.Database, log *zap.Logger) (*repository, error) {
	r := &repository{
		books:    db.Collection(booksCollection),
		users:    db.Collection(usersCollection),
		statuses: db.Collection(statusesCollection),
		log:      log.Named("repo"),
	}
	if err := r.ensureIndexes(context.Background()); err != nil {
		return nil, errors.Wrap(err, "ensure indexes")
	}
	return r, nil
}

func (r *repository) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "userName", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
	})
	if err != nil {
		return err
	}

	// One status row per (customer, book) pair.
	_, err = r.statuses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "bookId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_customer_book"),
	})
	return err
}

func pageOffset(page, limit int) int64 {
	return int64((page - 1) * limit)
}

func optionsFindPage(page, limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(pageOffset(page, limit)).
		SetLimit(int64(limit))
}
