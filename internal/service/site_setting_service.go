package service

import (
	"fmt"
	"strings"

	"github.com/storecraft/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteSettings 描述租户可配置的店面信息。
type SiteSettings struct {
	SiteName   string
	SiteLogo   string
	ThemeColor string
	FooterText string
}

// SiteSettingsInput 用于更新店面设置。
type SiteSettingsInput struct {
	SiteName   string
	SiteLogo   string
	ThemeColor string
	FooterText string
}

// SiteSettingService 提供租户店面设置的读取与更新能力。
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService 构造 SiteSettingService。
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeySiteLogoURL,
	db.SettingKeyThemeColor,
	db.SettingKeyFooterText,
}

// GetSettings 读取租户店面设置，如未设置将返回默认值。
func (s *SiteSettingService) GetSettings(tenantID uint) (SiteSettings, error) {
	result := SiteSettings{SiteName: "我的商店", ThemeColor: "#111111"}

	var records []db.SiteSetting
	if err := s.db.Where("tenant_id = ? AND key IN ?", tenantID, settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeySiteName:
			if strings.TrimSpace(record.Value) != "" {
				result.SiteName = record.Value
			}
		case db.SettingKeySiteLogoURL:
			result.SiteLogo = record.Value
		case db.SettingKeyThemeColor:
			if strings.TrimSpace(record.Value) != "" {
				result.ThemeColor = record.Value
			}
		case db.SettingKeyFooterText:
			result.FooterText = record.Value
		}
	}

	return result, nil
}

// UpdateSettings 保存租户店面设置，未填写店铺名称时回退默认值。
func (s *SiteSettingService) UpdateSettings(tenantID uint, input SiteSettingsInput) (SiteSettings, error) {
	sanitized := SiteSettings{
		SiteName:   strings.TrimSpace(input.SiteName),
		SiteLogo:   strings.TrimSpace(input.SiteLogo),
		ThemeColor: strings.TrimSpace(input.ThemeColor),
		FooterText: strings.TrimSpace(input.FooterText),
	}

	if sanitized.SiteName == "" {
		sanitized.SiteName = "我的商店"
	}
	if sanitized.ThemeColor == "" {
		sanitized.ThemeColor = "#111111"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pairs := map[string]string{
			db.SettingKeySiteName:    sanitized.SiteName,
			db.SettingKeySiteLogoURL: sanitized.SiteLogo,
			db.SettingKeyThemeColor:  sanitized.ThemeColor,
			db.SettingKeyFooterText:  sanitized.FooterText,
		}
		for _, key := range settingKeys {
			if err := upsertSetting(tx, tenantID, key, pairs[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, fmt.Errorf("update site settings: %w", err)
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, tenantID uint, key, value string) error {
	setting := db.SiteSetting{TenantID: tenantID, Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
