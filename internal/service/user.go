package service

import (
	"context"

	"github.com/bookshelf-app/bookshelf-service/internal/errs"
	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/bookshelf-app/bookshelf-service/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenSigner issues bearer tokens. Satisfied by auth.Manager.
type TokenSigner interface {
	Sign(userID, userName string) (string, error)
}

type User struct {
	log    *zap.Logger
	repo   repository.Repository
	tokens TokenSigner
}

func NewUser(repo repository.Repository, tokens TokenSigner, log *zap.Logger) *User {
	return &User{
		log:    log,
		repo:   repo,
		tokens: tokens,
	}
}

func (s *User) Signup(ctx context.Context, req model.SignupRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	_, err = s.repo.CreateUser(ctx, model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		UserName:  req.UserName,
		Password:  string(hash),
	})
	return err
}

// Login deliberately reports the same failure for an unknown email and a
// wrong password.
func (s *User) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.LoginResponse{}, errs.ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return model.LoginResponse{}, errs.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.ID.Hex(), user.UserName)
	if err != nil {
		s.log.Error("sign token", zap.Error(err))
		return model.LoginResponse{}, err
	}

	user.Password = ""
	return model.LoginResponse{
		UserDetails: user,
		Token:       token,
	}, nil
}
