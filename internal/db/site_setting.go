package db

import "gorm.io/gorm"

// SiteSetting 存储租户级别的站点键值设置。
type SiteSetting struct {
	gorm.Model
	TenantID uint   `gorm:"not null;uniqueIndex:idx_site_settings_tenant_key"`
	Key      string `gorm:"size:100;not null;uniqueIndex:idx_site_settings_tenant_key"`
	Value    string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeySiteName 表示店铺名称。
	SettingKeySiteName = "site_name"
	// SettingKeySiteLogoURL 表示店铺 Logo 链接。
	SettingKeySiteLogoURL = "site_logo_url"
	// SettingKeyThemeColor 表示店铺主题色。
	SettingKeyThemeColor = "theme_color"
	// SettingKeyFooterText 表示店铺页脚文案。
	SettingKeyFooterText = "footer_text"
)
