package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthRegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthLoginInput struct {
	Email    string
	Password string
}

type AuthLoginOutput struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int64   `json:"expires_in"`
}

type AuthUsecase struct {
	cfg   config.Config
	users repo.UserRepository
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{
		cfg:   cfg,
		users: users,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in AuthRegisterInput) (UserDTO, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if name == "" {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	//重複チェック
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "email already registered")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(pwHash),
	}

	if err := u.users.Create(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "email already registered")
	}

	return UserDTO{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in AuthLoginInput) (AuthLoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return AuthLoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		//存在有無は漏らさない
		return AuthLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	expiresAt := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthLoginOutput{
		User:        UserDTO{ID: user.ID, Name: user.Name, Email: user.Email},
		AccessToken: signed,
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	}, nil
}
