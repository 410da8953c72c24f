package db

import "gorm.io/gorm"

// Product 定义了商品模型
type Product struct {
	gorm.Model
	TenantID    uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	ImageURL    string
	ImageWidth  int
	ImageHeight int
	PriceCents  int64  `gorm:"default:0"`
	Currency    string `gorm:"size:8;default:TWD"`
	Status      string `gorm:"default:published"` // published, draft
	SortOrder   int    `gorm:"default:0"`
}
