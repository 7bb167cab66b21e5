package shop

import (
	"context"      // Request scoped cancellation
	"strings"      // String manipulation
	"unicode/utf8" // Character counts

	"storefront/internal/domain" // Domain models

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/gorm"          // GORM ORM library
)

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	SKU         string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	SecretCode  string  `json:"secret_code"`
	IsAvailable *bool   `json:"is_available"`
}

func (in *ProductInput) normalize() error {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	in.SecretCode = strings.TrimSpace(in.SecretCode)
	if in.SKU == "" || in.Name == "" || in.SecretCode == "" {
		return domain.ErrInvalidProduct
	}
	if utf8.RuneCountInString(in.SKU) > domain.MaxSKULength ||
		utf8.RuneCountInString(in.Name) > domain.MaxProductNameLength ||
		utf8.RuneCountInString(in.SecretCode) > domain.MaxSecretCodeLength {
		return domain.ErrProductFieldLength
	}
	if !(in.Price >= 0) {
		return domain.ErrInvalidPrice
	}
	return nil
}

// CreateProduct adds a product. The SKU must not be used by any other product.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	product := &domain.Product{
		SKU:         in.SKU,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		SecretCode:  in.SecretCode,
		IsAvailable: in.IsAvailable == nil || *in.IsAvailable, // Listed unless explicitly hidden
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := skuFree(tx, in.SKU, 0); err != nil {
			return err
		}
		return tx.Create(product).Error
	})
	if err != nil {
		return nil, catalogError(err, "create product")
	}
	return product, nil
}

// UpdateProduct replaces the editable fields of the product stored under id.
// A nil IsAvailable keeps the current availability.
func (s *Service) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*domain.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var product domain.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		if err := skuFree(tx, in.SKU, id); err != nil {
			return err
		}
		product.SKU = in.SKU
		product.Name = in.Name
		product.Price = in.Price
		product.Description = in.Description
		product.ImageURL = in.ImageURL
		product.SecretCode = in.SecretCode
		if in.IsAvailable != nil {
			product.IsAvailable = *in.IsAvailable
		}
		return tx.Save(&product).Error
	})
	if err != nil {
		return nil, catalogError(err, "update product")
	}
	return &product, nil
}

// SetProductImage stores an image URL (usually a data URL) on the product.
func (s *Service) SetProductImage(ctx context.Context, id uint, url string) (*domain.Product, error) {
	err := s.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Update("image_url", url).Error
	if err != nil {
		return nil, errors.Wrap(err, "update product image")
	}
	// Zero affected rows is ambiguous on MySQL, so existence is checked by reading back
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product after explicit confirmation. Orders keep
// their own snapshot of the product and are not touched.
func (s *Service) DeleteProduct(ctx context.Context, id uint, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationDeclined // Nothing deleted
	}
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 { // Unknown id
		return domain.ErrProductNotFound
	}
	return nil
}

// GetProduct loads a product by internal id.
func (s *Service) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, catalogError(err, "load product")
	}
	return &product, nil
}

// ListProducts returns the full catalog, secret codes included.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// ListAvailableProducts returns the storefront view of products on sale.
func (s *Service) ListAvailableProducts(ctx context.Context) ([]domain.PublicProduct, error) {
	var products []domain.Product
	if err := s.db.WithContext(ctx).Where("is_available = ?", true).Order("id asc").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list available products")
	}
	out := make([]domain.PublicProduct, len(products))
	for i, p := range products {
		out[i] = p.Public()
	}
	return out, nil
}

// skuFree fails with ErrDuplicateSKU when another product already uses sku.
func skuFree(tx *gorm.DB, sku string, exceptID uint) error {
	var n int64
	q := tx.Model(&domain.Product{}).Where("product_id = ?", sku)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrDuplicateSKU
	}
	return nil
}

func catalogError(err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateSKU), errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateSKU
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrProductNotFound
	}
	return errors.Wrap(err, op)
}
