package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storecraft/internal/service"
)

type settingsPayload struct {
	SiteName   string `json:"siteName"`
	SiteLogo   string `json:"siteLogo"`
	ThemeColor string `json:"themeColor"`
	FooterText string `json:"footerText"`
}

func settingsView(settings service.SiteSettings) gin.H {
	return gin.H{
		"siteName":   settings.SiteName,
		"siteLogo":   settings.SiteLogo,
		"themeColor": settings.ThemeColor,
		"footerText": settings.FooterText,
	}
}

// GetSiteSettings 返回当前商店的店面设置。
func (a *API) GetSiteSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings(currentTenantID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "加载店面设置失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settingsView(settings)})
}

// UpdateSiteSettings 保存店面设置，并让店面缓存整体失效。
func (a *API) UpdateSiteSettings(c *gin.Context) {
	var payload settingsPayload
	if !bindJSON(c, &payload, "设置数据格式不正确") {
		return
	}

	tenantID := currentTenantID(c)
	settings, err := a.settings.UpdateSettings(tenantID, service.SiteSettingsInput{
		SiteName:   payload.SiteName,
		SiteLogo:   payload.SiteLogo,
		ThemeColor: payload.ThemeColor,
		FooterText: payload.FooterText,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "保存店面设置失败")
		return
	}

	// 站点名称与页脚出现在每个店面页面里，全部缓存一并失效
	a.invalidateStorefront(tenantID)

	c.JSON(http.StatusOK, gin.H{"message": "店面设置已保存", "settings": settingsView(settings)})
}

func (a *API) invalidateStorefront(tenantID uint) {
	keys := []string{service.CacheKeyStoreRoot(tenantID)}
	if pages, err := a.pages.List(tenantID); err == nil {
		for _, page := range pages {
			keys = append(keys, service.CacheKeyStorePage(tenantID, page.Slug))
		}
	}
	a.cache.Invalidate(keys...)
}
