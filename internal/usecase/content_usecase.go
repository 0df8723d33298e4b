package usecase

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// 配送方法・決済手段・ページ本文の管理と公開参照
type ContentUsecase struct {
	shippingRepo repo.ShippingMethodRepository
	methodRepo   repo.PaymentMethodRepository
	pageRepo     repo.PageContentRepository
}

// DI
func NewContentUsecase(
	shippingRepo repo.ShippingMethodRepository,
	methodRepo repo.PaymentMethodRepository,
	pageRepo repo.PageContentRepository,
) *ContentUsecase {
	return &ContentUsecase{
		shippingRepo: shippingRepo,
		methodRepo:   methodRepo,
		pageRepo:     pageRepo,
	}
}

// 公開側

func (u *ContentUsecase) ListShippingMethods(ctx context.Context) ([]model.ShippingMethod, error) {
	methods, err := u.shippingRepo.List(ctx, true)
	if err != nil {
		return []model.ShippingMethod{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return methods, nil
}

func (u *ContentUsecase) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	methods, err := u.methodRepo.List(ctx, true)
	if err != nil {
		return []model.PaymentMethod{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return methods, nil
}

func (u *ContentUsecase) GetPage(ctx context.Context, slug string, language string) (model.PageContent, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return model.PageContent{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}
	if language == "" {
		language = "en"
	}

	p, err := u.pageRepo.FindBySlug(ctx, slug, language)
	if err == repo.ErrNotFound {
		return model.PageContent{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.PageContent{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 管理側

type SaveShippingMethodInput struct {
	Name     string
	FeeMinor int64
	EtaDays  int64
	IsActive bool
}

func (u *ContentUsecase) CreateShippingMethod(ctx context.Context, in SaveShippingMethodInput) (model.ShippingMethod, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.ShippingMethod{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.FeeMinor < 0 {
		return model.ShippingMethod{}, NewHTTPError(http.StatusBadRequest, "invalid fee")
	}

	created, err := u.shippingRepo.Create(ctx, model.ShippingMethod{
		Name:     strings.TrimSpace(in.Name),
		FeeMinor: in.FeeMinor,
		EtaDays:  in.EtaDays,
		IsActive: in.IsActive,
	})
	if err != nil {
		return model.ShippingMethod{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ContentUsecase) UpdateShippingMethod(ctx context.Context, id int64, in SaveShippingMethodInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.FeeMinor < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid fee")
	}

	err := u.shippingRepo.Update(ctx, model.ShippingMethod{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		FeeMinor: in.FeeMinor,
		EtaDays:  in.EtaDays,
		IsActive: in.IsActive,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ContentUsecase) DeleteShippingMethod(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.shippingRepo.DeleteByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type SavePaymentMethodInput struct {
	Code string
	Name string
}

func (u *ContentUsecase) CreatePaymentMethod(ctx context.Context, in SavePaymentMethodInput) (model.PaymentMethod, error) {
	code := strings.ToLower(strings.TrimSpace(in.Code))
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return model.PaymentMethod{}, NewHTTPError(http.StatusBadRequest, "code and name required")
	}

	created, err := u.methodRepo.Create(ctx, model.PaymentMethod{
		Code:     code,
		Name:     strings.TrimSpace(in.Name),
		IsActive: true,
	})
	if err != nil {
		return model.PaymentMethod{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ContentUsecase) SetPaymentMethodActive(ctx context.Context, id int64, isActive bool) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.methodRepo.SetActive(ctx, id, isActive)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type SavePageInput struct {
	Slug     string
	Title    string
	Body     string
	Language string
}

func (u *ContentUsecase) UpsertPage(ctx context.Context, in SavePageInput) (model.PageContent, error) {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" || strings.TrimSpace(in.Title) == "" {
		return model.PageContent{}, NewHTTPError(http.StatusBadRequest, "slug and title required")
	}
	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = "en"
	}

	p, err := u.pageRepo.Upsert(ctx, model.PageContent{
		Slug:     slug,
		Title:    strings.TrimSpace(in.Title),
		Body:     in.Body,
		Language: language,
	})
	if err != nil {
		return model.PageContent{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ContentUsecase) DeletePage(ctx context.Context, slug string, language string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid slug")
	}
	if language == "" {
		language = "en"
	}

	err := u.pageRepo.DeleteBySlug(ctx, slug, language)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
