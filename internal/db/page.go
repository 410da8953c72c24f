package db

import "gorm.io/gorm"

// Page 定义了店铺自定义页面模型，Content 以 JSON 形式存储有序模块列表。
type Page struct {
	gorm.Model
	TenantID        uint   `gorm:"not null;uniqueIndex:idx_pages_tenant_slug"`
	Slug            string `gorm:"size:200;not null;uniqueIndex:idx_pages_tenant_slug"`
	Title           string `gorm:"not null"`
	IsHomepage      bool   `gorm:"default:false"`
	Published       bool   `gorm:"default:false"`
	ShowInNav       bool   `gorm:"default:false"`
	NavOrder        int    `gorm:"default:0"`
	BackgroundColor string `gorm:"size:20"`
	SEOTitle        string
	SEODescription  string
	SEOKeywords     string
	Content         string `gorm:"type:text"`
}

// NavEntry 定义了店铺导航条目，标题与所指向的页面保持同步。
type NavEntry struct {
	gorm.Model
	TenantID uint   `gorm:"index;not null"`
	PageID   uint   `gorm:"index;not null"`
	Title    string `gorm:"not null"`
	Position int    `gorm:"default:0"`
}
