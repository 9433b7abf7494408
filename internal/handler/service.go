package handler

import (
	"context"

	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/bookshelf-app/bookshelf-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go -package=mocks

var (
	_ CatalogService = (*service.Catalog)(nil)
	_ UserService    = (*service.User)(nil)
	_ StatusService  = (*service.Status)(nil)
)

type CatalogService interface {
	ListBooks(ctx context.Context, q model.ListBooksQuery) (model.BookList, error)
	ListGenres(ctx context.Context) ([]string, error)
	ListBooksByGenre(ctx context.Context, genre string, page, limit int) (model.GenreBookList, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	AddBook(ctx context.Context, req model.AddBookRequest, cover service.CoverFile) (model.Book, error)
}

type UserService interface {
	Signup(ctx context.Context, req model.SignupRequest) error
	Login(ctx context.Context, email, password string) (model.LoginResponse, error)
}

type StatusService interface {
	Toggle(ctx context.Context, customerID, bookID string) (model.ReadStatus, error)
	ListRead(ctx context.Context, customerID string, page, limit int) (model.StatusBookList, error)
	ListUnread(ctx context.Context, customerID string, page, limit int) (model.StatusBookList, error)
}
