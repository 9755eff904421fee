package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/woodline/backend/internal/domain"
)

type CatalogUC struct {
	Categories domain.CategoryRepo
	Products   domain.ProductRepo
}

func (uc *CatalogUC) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return uc.Categories.ListActive(ctx)
}

func (uc *CatalogUC) GetCategory(ctx context.Context, slug string) (*domain.Category, error) {
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	return uc.Categories.FindBySlug(ctx, slug)
}

func (uc *CatalogUC) CreateCategory(ctx context.Context, c *domain.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Slug == "" {
		slug, err := uniqueSlug(ctx, c.Name, uc.Categories.SlugTaken)
		if err != nil {
			return err
		}
		c.Slug = slug
	}
	return uc.Categories.Save(ctx, c)
}

func (uc *CatalogUC) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Products.List(ctx, f)
}

func (uc *CatalogUC) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	return uc.Products.FindBySlug(ctx, slug)
}

func (uc *CatalogUC) SaveProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Slug == "" {
		slug, err := uniqueSlug(ctx, p.Name, uc.Products.SlugTaken)
		if err != nil {
			return err
		}
		p.Slug = slug
	}
	return uc.Products.Save(ctx, p)
}

// Slugify lowercases the name and keeps letters, digits and dashes.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func uniqueSlug(ctx context.Context, name string, taken func(context.Context, string) (bool, error)) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = uuid.NewString()[:8]
	}
	slug := base
	for i := 2; ; i++ {
		exists, err := taken(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
