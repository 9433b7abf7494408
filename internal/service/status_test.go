package service

import (
	"context"
	"testing"

	"github.com/bookshelf-app/bookshelf-service/internal/errs"
	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	testCustomerHex = "64f1b2c3d4e5f6a7b8c9d0e2"
	testBookHex     = "64f1b2c3d4e5f6a7b8c9d0e1"
)

func TestStatus_Toggle(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		repo.toggleStatusFn = func(ctx context.Context, customerID, bookID primitive.ObjectID) (model.ReadStatus, error) {
			require.Equal(t, testCustomerHex, customerID.Hex())
			require.Equal(t, testBookHex, bookID.Hex())
			return model.ReadStatus{CustomerID: customerID, BookID: bookID, Status: model.StateRead}, nil
		}
		svc := NewStatus(repo, zap.NewNop())

		status, err := svc.Toggle(context.Background(), testCustomerHex, testBookHex)
		require.NoError(t, err)
		require.Equal(t, model.StateRead, status.Status)
	})

	t.Run("err. malformed customer id", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := NewStatus(repo, zap.NewNop())

		_, err := svc.Toggle(context.Background(), "nope", testBookHex)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "customerId", vErr.Field)
		require.Zero(t, repo.calls["ToggleStatus"])
	})

	t.Run("err. malformed book id", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := NewStatus(repo, zap.NewNop())

		_, err := svc.Toggle(context.Background(), testCustomerHex, "nope")

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "bookId", vErr.Field)
		require.Zero(t, repo.calls["ToggleStatus"])
	})
}

func TestStatus_ListByState(t *testing.T) {
	t.Parallel()

	books := []model.Book{{Title: "Dune"}, {Title: "Hyperion"}}

	var tests = []struct {
		name      string
		list      func(svc *Status) (model.StatusBookList, error)
		wantState model.ReadState
		wantRead  bool
	}{
		{
			name: "read list annotates read=true",
			list: func(svc *Status) (model.StatusBookList, error) {
				return svc.ListRead(context.Background(), testCustomerHex, 1, 10)
			},
			wantState: model.StateRead,
			wantRead:  true,
		},
		{
			name: "unread list annotates read=false",
			list: func(svc *Status) (model.StatusBookList, error) {
				return svc.ListUnread(context.Background(), testCustomerHex, 1, 10)
			},
			wantState: model.StateUnread,
			wantRead:  false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := newFakeRepo()
			repo.listStatusBooksFn = func(ctx context.Context, customerID primitive.ObjectID, state model.ReadState, page, limit int) ([]model.Book, int64, error) {
				require.Equal(t, testCustomerHex, customerID.Hex())
				require.Equal(t, tt.wantState, state)
				return books, 12, nil
			}
			svc := NewStatus(repo, zap.NewNop())

			list, err := tt.list(svc)
			require.NoError(t, err)
			require.Len(t, list.Data, 2)
			for _, b := range list.Data {
				require.Equal(t, tt.wantRead, b.Read)
			}
			require.EqualValues(t, 12, list.TotalItems)
			require.Equal(t, 2, list.TotalPages)
			require.Equal(t, 10, list.PageSize)
		})
	}

	t.Run("err. malformed customer id", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := NewStatus(repo, zap.NewNop())

		_, err := svc.ListRead(context.Background(), "nope", 1, 10)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Zero(t, repo.calls["ListStatusBooks"])
	})
}
