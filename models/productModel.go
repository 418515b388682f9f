package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductActive  ProductStatus = "active"
	ProductDeleted ProductStatus = "deleted"
)

type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SellerID    uint            `json:"seller_id" gorm:"index"`
	Brand       string          `json:"brand" gorm:"size:100;index"`
	ModelName   string          `json:"model_name" gorm:"size:150"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int             `json:"stock"`
	RAM         int             `json:"ram" gorm:"column:ram"`
	ROM         int             `json:"rom" gorm:"column:rom"`
	NetworkType string          `json:"network_type" gorm:"size:20"`
	Processor   string          `json:"processor" gorm:"size:100"`
	Battery     int             `json:"battery"`
	ScreenSize  float64         `json:"screen_size"`
	Colors      datatypes.JSON  `json:"colors,omitempty"`
	ImageURL    string          `json:"image_url,omitempty" gorm:"size:500"`
	Status      ProductStatus   `json:"-" gorm:"size:20;not null;default:active;index"`
	IsActive    bool            `json:"is_active" gorm:"-"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.IsActive = p.Status == ProductActive
	return nil
}

func (p *Product) Short() ProductShort {
	return ProductShort{
		ID:        p.ID,
		Brand:     p.Brand,
		ModelName: p.ModelName,
		ImageURL:  p.ImageURL,
		Price:     p.Price,
	}
}

// ProductShort is the view of a product nested in cart and wishlist responses.
type ProductShort struct {
	ID        uint            `json:"id"`
	Brand     string          `json:"brand"`
	ModelName string          `json:"model_name"`
	ImageURL  string          `json:"image_url,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

type ProductInput struct {
	Brand       string          `form:"brand" validate:"required"`
	ModelName   string          `form:"model_name" validate:"required"`
	Description string          `form:"description"`
	Price       decimal.Decimal `form:"-" validate:"-"`
	Stock       int             `form:"stock" validate:"gte=0"`
	RAM         int             `form:"ram" validate:"gt=0"`
	ROM         int             `form:"rom" validate:"gt=0"`
	NetworkType string          `form:"network_type" validate:"required"`
	Processor   string          `form:"processor" validate:"required"`
	Battery     int             `form:"battery" validate:"gt=0"`
	ScreenSize  float64         `form:"screen_size" validate:"gt=0"`
	Colors      datatypes.JSON  `form:"-"`
}

// ProductUpdate carries the optional fields a seller may change; nil means unchanged.
type ProductUpdate struct {
	Brand       *string
	ModelName   *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	IsActive    *bool
}

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type FilterOptions struct {
	Brands         []string   `json:"brands"`
	RAMOptions     []int      `json:"ram_options"`
	ROMOptions     []int      `json:"rom_options"`
	NetworkTypes   []string   `json:"network_types"`
	Processors     []string   `json:"processors"`
	BatteryOptions []int      `json:"battery_options"`
	ScreenSizes    []float64  `json:"screen_sizes"`
	PriceRange     PriceRange `json:"price_range"`
}

// SearchFilters holds the optional catalog predicates. Empty slices and nil
// bounds place no constraint on their dimension.
type SearchFilters struct {
	Brands     []string
	RAM        []int
	ROM        []int
	Networks   []string
	Processors []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinBattery *int
}
