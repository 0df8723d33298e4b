package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

const bcryptCost = 12

type AuthUsecase struct {
	userRepo repo.UserRepository
	secret   []byte
}

// DI
func NewAuthUsecase(userRepo repo.UserRepository, jwtSecret string) *AuthUsecase {
	return &AuthUsecase{userRepo: userRepo, secret: []byte(jwtSecret)}
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthTokenDTO struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthOutput struct {
	User  UserDTO      `json:"user"`
	Token AuthTokenDTO `json:"token"`
}

// 会員登録。email重複は409
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	created, err := u.userRepo.Create(ctx, model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		IsActive:     true,
	})
	if err == repo.ErrDuplicateKey {
		return AuthOutput{}, NewHTTPError(http.StatusConflict, "email already registered")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issueFor(created)
}

// ログイン。失敗理由は区別しない
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !user.IsActive {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//最終ログインは記録できなくても続行
	_ = u.userRepo.TouchLastLogin(ctx, user.ID)

	return u.issueFor(user)
}

// HS256のアクセストークンを発行
func (u *AuthUsecase) issueFor(user model.User) (AuthOutput, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.secret)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthOutput{
		User: UserDTO{
			ID:    user.ID,
			Email: user.Email,
			Role:  string(user.Role),
		},
		Token: AuthTokenDTO{
			AccessToken: signed,
			ExpiresIn:   int(accessTokenTTL.Seconds()),
		},
	}, nil
}
