package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CategoryUsecase) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	c, err := u.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{Name: name})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CategoryUsecase) UpdateCategory(ctx context.Context, id int64, name string) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	if err := u.categoryRepo.Update(ctx, model.Category{ID: id, Name: name}); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetCategory(ctx, id)
}

func (u *CategoryUsecase) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	if err := u.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
