package service

import (
	"errors"
	"strings"

	"github.com/storecraft/internal/db"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNameMissing   = errors.New("product name is required")
	ErrProductStatusInvalid = errors.New("product status is invalid")
	ErrProductPriceInvalid  = errors.New("product price is invalid")
)

const (
	ProductStatusPublished = "published"
	ProductStatusDraft     = "draft"
)

// ProductService handles product CRUD for a tenant's storefront.
type ProductService struct {
	db *gorm.DB
}

// ProductFilter describes filters for listing products.
type ProductFilter struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// ProductListResult aggregates paginated product results.
type ProductListResult struct {
	Items      []db.Product
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// ProductInput represents fields accepted when creating or updating a product.
type ProductInput struct {
	Name        string
	Description string
	ImageURL    string
	ImageWidth  int
	ImageHeight int
	PriceCents  int64
	Currency    string
	Status      string
	SortOrder   int
}

// NewProductService creates a ProductService instance.
func NewProductService(gdb *gorm.DB) *ProductService {
	return &ProductService{db: gdb}
}

// List returns products of a tenant matching the filter.
func (s *ProductService) List(tenantID uint, filter ProductFilter) (ProductListResult, error) {
	result := ProductListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 12),
	}

	query := s.db.Model(&db.Product{}).Where("tenant_id = ?", tenantID)
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("sort_order desc").Order("created_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// ListPublished returns published products with pagination, for storefront blocks.
func (s *ProductService) ListPublished(tenantID uint, page, perPage int) (ProductListResult, error) {
	return s.List(tenantID, ProductFilter{
		Status:  ProductStatusPublished,
		Page:    page,
		PerPage: perPage,
	})
}

// Get fetches a product by id.
func (s *ProductService) Get(id uint) (*db.Product, error) {
	var item db.Product
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new product.
func (s *ProductService) Create(tenantID uint, input ProductInput) (*db.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	sortOrder := input.SortOrder
	if sortOrder == 0 {
		next, err := s.nextSortOrder(tenantID)
		if err != nil {
			return nil, err
		}
		sortOrder = next
	}

	item := db.Product{
		TenantID:    tenantID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		ImageWidth:  input.ImageWidth,
		ImageHeight: input.ImageHeight,
		PriceCents:  input.PriceCents,
		Currency:    normalizeCurrency(input.Currency),
		Status:      normalizeProductStatus(input.Status),
		SortOrder:   sortOrder,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing product.
func (s *ProductService) Update(id uint, input ProductInput) (*db.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	var item db.Product
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Description = strings.TrimSpace(input.Description)
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.ImageWidth = input.ImageWidth
	item.ImageHeight = input.ImageHeight
	item.PriceCents = input.PriceCents
	item.Currency = normalizeCurrency(input.Currency)
	item.Status = normalizeProductStatus(input.Status)
	item.SortOrder = input.SortOrder

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a product.
func (s *ProductService) Delete(id uint) error {
	var item db.Product
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.db.Delete(&item).Error
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductNameMissing
	}
	if input.PriceCents < 0 {
		return ErrProductPriceInvalid
	}
	status := normalizeProductStatus(input.Status)
	if status != ProductStatusPublished && status != ProductStatusDraft {
		return ErrProductStatusInvalid
	}
	return nil
}

func normalizeProductStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return ProductStatusPublished
	}
	return status
}

func normalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return "TWD"
	}
	return currency
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func (s *ProductService) nextSortOrder(tenantID uint) (int, error) {
	var maxOrder int
	if err := s.db.Model(&db.Product{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
