/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"yatube/internal/apperr"
	"yatube/internal/entity"
	"yatube/internal/nlog"
	"yatube/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

// ErrBadCredentials is returned by Login for an unknown user or a wrong
// password, without telling which.
var ErrBadCredentials = errors.Wrap(apperr.ErrUnauthorized, "wrong username or password")

type SignupInput struct {
	Username        string
	FirstName       string
	LastName        string
	Email           string
	Password        string
	PasswordConfirm string
}

// AuthService is the identity provider: it registers users and checks
// their credentials.
type AuthService interface {
	Register(ctx context.Context, in SignupInput) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, error)
}

type authService struct {
	users  repository.UserRepository
	logger nlog.Logger
}

func NewAuthService(users repository.UserRepository, logger nlog.Logger) AuthService {
	return &authService{
		users:  users,
		logger: logger,
	}
}

func (a *authService) Logf(format string, v ...any) {
	a.logger.Logf(format, v...)
}

func validateSignup(in *SignupInput) error {
	in.Username = strings.TrimSpace(in.Username)
	if !usernamePattern.MatchString(in.Username) {
		return apperr.NewValidationError("username", "Use up to 150 letters, digits and @/./+/-/_ only")
	}
	if len(in.Password) < minPasswordLength {
		return apperr.NewValidationError("password", "Password must be at least 8 characters")
	}
	if in.Password != in.PasswordConfirm {
		return apperr.NewValidationError("password_confirm", "Passwords do not match")
	}
	return nil
}

func (a *authService) Register(ctx context.Context, in SignupInput) (*entity.User, error) {
	if err := validateSignup(&in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Logf("Could not calculate hash{%v}", err)
		return nil, errors.Wrap(err, "hash password")
	}

	id := uuid.New().String()
	u := &entity.User{
		UUID:      id,
		Username:  in.Username,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: time.Now(),

		Secret: entity.UserSecret{
			UserUUID: id,
			Hash:     string(hash),
		},
	}
	if err := a.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.NewValidationError("username", "A user with that username already exists")
		}
		return nil, err
	}
	a.Logf("User %s registered", u.Username)
	return u, nil
}

func (a *authService) Login(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := a.users.GetForLogin(ctx, strings.TrimSpace(username))
	if apperr.IsNotFound(err) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Secret.Hash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	a.Logf("User %s logged in", u.Username)
	return u, nil
}
