package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title           string             `json:"title" bson:"title"`
	Author          string             `json:"author" bson:"author"`
	Genre           string             `json:"genre" bson:"genre"`
	PublicationYear int                `json:"publicationYear" bson:"publicationYear"`
	CoverImage      string             `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	IsDeleted       bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt       time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// BookWithRead annotates a catalog entry with the caller's read flag.
type BookWithRead struct {
	Book `json:",inline" bson:",inline"`
	Read bool `json:"read" bson:"read"`
}

type User struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	Email     string             `json:"email" bson:"email"`
	UserName  string             `json:"userName" bson:"userName"`
	Password  string             `json:"-" bson:"password"`
	IsDeleted bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ReadState replaces the overloaded soft-delete boolean the original data
// carried for statuses. One row per (customer, book) pair.
type ReadState string

const (
	StateRead   ReadState = "read"
	StateUnread ReadState = "unread"
)

type ReadStatus struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CustomerID primitive.ObjectID `json:"customerId" bson:"customerId"`
	BookID     primitive.ObjectID `json:"bookId" bson:"bookId"`
	Status     ReadState          `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt  time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	UserName  string `json:"userName" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	UserDetails User   `json:"userDetails"`
	Token       string `json:"token"`
}

type AddBookRequest struct {
	Title           string `form:"title" validate:"required"`
	Author          string `form:"author" validate:"required"`
	Genre           string `form:"genre" validate:"required"`
	PublicationYear int    `form:"publicationYear" validate:"required,pubyear"`
}

type ToggleStatusRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
	BookID     string `json:"bookId" validate:"required"`
}

type ListBooksQuery struct {
	Query      string
	CustomerID string
	Page       int
	Limit      int
}

type BookList struct {
	Data        []BookWithRead `json:"data"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

type GenreBookList struct {
	Data        []Book `json:"data"`
	TotalBooks  int64  `json:"totalBooks"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}

type StatusBookList struct {
	Data        []BookWithRead `json:"data"`
	TotalItems  int64          `json:"totalItems"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	PageSize    int            `json:"pageSize"`
}
