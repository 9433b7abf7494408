package service

import (
	"context"
	"io"
	"math"

	"github.com/bookshelf-app/bookshelf-service/internal/errs"
	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/bookshelf-app/bookshelf-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CoverStorage is the blob-store capability the catalog needs. Satisfied by
// storage.Uploader.
type CoverStorage interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (url, key string, err error)
	Delete(ctx context.Context, key string) error
}

// CoverFile is an uploaded cover image, decoupled from the transport.
type CoverFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

type Catalog struct {
	log     *zap.Logger
	repo    repository.Repository
	storage CoverStorage
}

func NewCatalog(repo repository.Repository, storage CoverStorage, log *zap.Logger) *Catalog {
	return &Catalog{
		log:     log,
		repo:    repo,
		storage: storage,
	}
}

// parseObjectID accepts only identifiers that round-trip to their canonical
// hex form, so "invalidid" or uppercase variants fail before any lookup.
func parseObjectID(field, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil || oid.Hex() != id {
		return primitive.NilObjectID, errs.NewValidationError(field, field+" is not a valid id")
	}
	return oid, nil
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

func (s *Catalog) ListBooks(ctx context.Context, q model.ListBooksQuery) (model.BookList, error) {
	var customerID *primitive.ObjectID
	if q.CustomerID != "" {
		oid, err := parseObjectID("customerId", q.CustomerID)
		if err != nil {
			return model.BookList{}, err
		}
		customerID = &oid
	}

	books, total, err := s.repo.ListBooks(ctx, q.Query, customerID, q.Page, q.Limit)
	if err != nil {
		return model.BookList{}, err
	}
	return model.BookList{
		Data:        books,
		TotalPages:  totalPages(total, q.Limit),
		CurrentPage: q.Page,
	}, nil
}

func (s *Catalog) ListGenres(ctx context.Context) ([]string, error) {
	return s.repo.ListGenres(ctx)
}

func (s *Catalog) ListBooksByGenre(ctx context.Context, genre string, page, limit int) (model.GenreBookList, error) {
	books, total, err := s.repo.ListBooksByGenre(ctx, genre, page, limit)
	if err != nil {
		return model.GenreBookList{}, err
	}
	return model.GenreBookList{
		Data:        books,
		TotalBooks:  total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}, nil
}

func (s *Catalog) GetBook(ctx context.Context, id string) (model.Book, error) {
	oid, err := parseObjectID("id", id)
	if err != nil {
		return model.Book{}, err
	}
	return s.repo.GetBook(ctx, oid)
}

// AddBook validates, then uploads, then inserts. Validation happens at the
// handler boundary before this is called; a failed insert cleans up the
// just-uploaded cover so no orphaned blob is left behind.
func (s *Catalog) AddBook(ctx context.Context, req model.AddBookRequest, cover CoverFile) (model.Book, error) {
	url, key, err := s.storage.Upload(ctx, cover.Name, cover.ContentType, cover.Body)
	if err != nil {
		return model.Book{}, err
	}

	book, err := s.repo.CreateBook(ctx, model.Book{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		CoverImage:      url,
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Warn("orphaned cover cleanup failed", zap.String("key", key), zap.Error(delErr))
		}
		return model.Book{}, err
	}
	return book, nil
}
