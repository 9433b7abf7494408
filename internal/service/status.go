package service

import (
	"context"

	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/bookshelf-app/bookshelf-service/internal/repository"
	"go.uber.org/zap"
)

type Status struct {
	log  *zap.Logger
	repo repository.Repository
}

func NewStatus(repo repository.Repository, log *zap.Logger) *Status {
	return &Status{
		log:  log,
		repo: repo,
	}
}

func (s *Status) Toggle(ctx context.Context, customerID, bookID string) (model.ReadStatus, error) {
	cid, err := parseObjectID("customerId", customerID)
	if err != nil {
		return model.ReadStatus{}, err
	}
	bid, err := parseObjectID("bookId", bookID)
	if err != nil {
		return model.ReadStatus{}, err
	}
	return s.repo.ToggleStatus(ctx, cid, bid)
}

func (s *Status) ListRead(ctx context.Context, customerID string, page, limit int) (model.StatusBookList, error) {
	return s.listByState(ctx, customerID, model.StateRead, page, limit)
}

func (s *Status) ListUnread(ctx context.Context, customerID string, page, limit int) (model.StatusBookList, error) {
	return s.listByState(ctx, customerID, model.StateUnread, page, limit)
}

func (s *Status) listByState(ctx context.Context, customerID string, state model.ReadState, page, limit int) (model.StatusBookList, error) {
	cid, err := parseObjectID("customerId", customerID)
	if err != nil {
		return model.StatusBookList{}, err
	}

	books, total, err := s.repo.ListStatusBooks(ctx, cid, state, page, limit)
	if err != nil {
		return model.StatusBookList{}, err
	}

	annotated := make([]model.BookWithRead, 0, len(books))
	for _, b := range books {
		annotated = append(annotated, model.BookWithRead{
			Book: b,
			Read: state == model.StateRead,
		})
	}

	return model.StatusBookList{
		Data:        annotated,
		TotalItems:  total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
		PageSize:    limit,
	}, nil
}
