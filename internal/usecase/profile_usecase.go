package usecase

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ProfileUsecase struct {
	profileRepo repo.ProfileRepository
}

// DI
func NewProfileUsecase(profileRepo repo.ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{profileRepo: profileRepo}
}

// 無ければ空のプロフィールを返す（行は作らない）
func (u *ProfileUsecase) GetMyProfile(ctx context.Context, userID int64) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := u.profileRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Profile{UserID: userID, PreferredCurrency: "USD"}, nil
	}
	if err != nil {
		return model.Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type UpdateProfileInput struct {
	DisplayName       string
	AvatarURL         string
	WalletAddress     string
	PreferredCurrency string
}

func (u *ProfileUsecase) UpdateMyProfile(ctx context.Context, userID int64, in UpdateProfileInput) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	currency := strings.ToUpper(strings.TrimSpace(in.PreferredCurrency))
	if currency == "" {
		currency = "USD"
	}
	if len(currency) > 10 {
		return model.Profile{}, NewHTTPError(http.StatusBadRequest, "invalid preferred_currency")
	}

	p, err := u.profileRepo.Upsert(ctx, model.Profile{
		UserID:            userID,
		DisplayName:       strings.TrimSpace(in.DisplayName),
		AvatarURL:         strings.TrimSpace(in.AvatarURL),
		WalletAddress:     strings.TrimSpace(in.WalletAddress),
		PreferredCurrency: currency,
	})
	if err != nil {
		return model.Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}
