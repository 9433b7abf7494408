package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bookshelf-app/bookshelf-service/internal/errs"
	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, duplicateUserError(err)
		}
		return model.User{}, errors.Wrap(err, "insert user")
	}
	return user, nil
}

// duplicateUserError maps the violated unique index to the offending field.
func duplicateUserError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "uniq_email"):
		return errs.ErrEmailExists
	case strings.Contains(msg, "uniq_username"):
		return errs.ErrUserNameExists
	default:
		return errs.ErrConflict
	}
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	filter := bson.M{"email": email, "isDeleted": false}
	if err := r.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, errors.Wrap(err, "find user")
	}
	return user, nil
}
