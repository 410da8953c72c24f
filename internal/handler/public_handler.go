package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storecraft/internal/block"
	"github.com/storecraft/internal/db"
	"github.com/storecraft/internal/render"
	"github.com/storecraft/internal/service"
)

// storefrontTmpl 是店面页面的外壳模板，正文由渲染器直接产出。
var storefrontTmpl = template.Must(template.New("storefront").Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
{{- if .Keywords}}
<meta name="keywords" content="{{.Keywords}}">
{{- end}}
<meta name="theme-color" content="{{.ThemeColor}}">
<link rel="stylesheet" href="/static/css/store.css">
</head>
<body>
<header class="store-header">
<a class="store-brand" href="/">
{{- if .SiteLogo}}<img src="{{.SiteLogo}}" alt="{{.SiteName}}">{{- else}}{{.SiteName}}{{- end}}
</a>
<nav class="store-nav">
{{- range .Nav}}
<a href="{{.Href}}">{{.Title}}</a>
{{- end}}
</nav>
</header>
<main>{{.Body}}</main>
<footer class="store-footer">{{.FooterText}}</footer>
<script src="/static/js/store.js"></script>
</body>
</html>
`))

type navItem struct {
	Title string
	Href  string
}

type storefrontView struct {
	Title       string
	Description string
	Keywords    string
	SiteName    string
	SiteLogo    string
	ThemeColor  string
	FooterText  string
	Nav         []navItem
	Body        template.HTML
}

// resolveTenant 按请求的 Host 定位商店。
func (a *API) resolveTenant(c *gin.Context) (*db.Tenant, bool) {
	tenant, err := a.tenants.ResolveByHost(c.Request.Host)
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			c.String(http.StatusNotFound, "商店不存在")
		} else {
			c.String(http.StatusInternalServerError, "商店加载失败")
		}
		return nil, false
	}
	return tenant, true
}

// ShowStoreHome 渲染商店首页。
func (a *API) ShowStoreHome(c *gin.Context) {
	tenant, ok := a.resolveTenant(c)
	if !ok {
		return
	}

	if cached, ok := a.cache.Get(service.CacheKeyStoreRoot(tenant.ID)); ok {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
		return
	}

	page, err := a.pages.Homepage(tenant.ID)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			c.String(http.StatusNotFound, "商店尚未发布任何页面")
			return
		}
		c.String(http.StatusInternalServerError, "页面加载失败")
		return
	}
	// 草稿首页与子页面同等对待，不对外提供
	if !page.Published {
		c.String(http.StatusNotFound, "商店尚未发布任何页面")
		return
	}

	a.renderStorePage(c, tenant, page, service.CacheKeyStoreRoot(tenant.ID))
}

// ShowStorePage 渲染商店内指定路径的页面，未发布的页面视同不存在。
func (a *API) ShowStorePage(c *gin.Context) {
	tenant, ok := a.resolveTenant(c)
	if !ok {
		return
	}

	slug := strings.TrimSpace(c.Param("slug"))
	if cached, ok := a.cache.Get(service.CacheKeyStorePage(tenant.ID, slug)); ok {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
		return
	}

	page, err := a.pages.GetBySlug(tenant.ID, slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			c.String(http.StatusNotFound, "找不到页面")
			return
		}
		c.String(http.StatusInternalServerError, "页面加载失败")
		return
	}
	if !page.Published {
		c.String(http.StatusNotFound, "找不到页面")
		return
	}

	a.renderStorePage(c, tenant, page, service.CacheKeyStorePage(tenant.ID, slug))
}

// renderStorePage 组装完整店面文档并写入渲染缓存。
// 店面以桌面版为基准渲染，行动版差异交由样式层处理。
func (a *API) renderStorePage(c *gin.Context, tenant *db.Tenant, page *db.Page, cacheKey string) {
	blocks, err := a.pages.Blocks(page)
	if err != nil {
		a.log.Warn("decode page content failed", zap.Uint("page_id", page.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "页面内容解析失败")
		return
	}

	settings, err := a.settings.GetSettings(tenant.ID)
	if err != nil {
		a.log.Warn("load site settings failed", zap.Uint("tenant_id", tenant.ID), zap.Error(err))
	}

	entries, err := a.pages.NavEntries(tenant.ID)
	if err != nil {
		a.log.Warn("load nav entries failed", zap.Uint("tenant_id", tenant.ID), zap.Error(err))
	}
	nav := make([]navItem, 0, len(entries))
	for _, entry := range entries {
		nav = append(nav, navItem{Title: entry.Title, Href: a.navHref(entry, tenant.ID)})
	}

	title := strings.TrimSpace(page.SEOTitle)
	if title == "" {
		title = page.Title
	}
	if settings.SiteName != "" {
		title = title + " | " + settings.SiteName
	}

	body := render.Page(blocks, page.BackgroundColor, render.Options{Device: block.DeviceDesktop})

	view := storefrontView{
		Title:       title,
		Description: page.SEODescription,
		Keywords:    page.SEOKeywords,
		SiteName:    settings.SiteName,
		SiteLogo:    settings.SiteLogo,
		ThemeColor:  settings.ThemeColor,
		FooterText:  settings.FooterText,
		Nav:         nav,
		Body:        body,
	}

	var sb strings.Builder
	if err := storefrontTmpl.Execute(&sb, view); err != nil {
		a.log.Error("render storefront failed", zap.Uint("page_id", page.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "页面渲染失败")
		return
	}

	html := sb.String()
	a.cache.Set(cacheKey, html)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (a *API) navHref(entry db.NavEntry, tenantID uint) string {
	page, err := a.pages.GetByID(entry.PageID)
	if err != nil || page.TenantID != tenantID || page.IsHomepage {
		return "/"
	}
	return "/" + page.Slug
}

// ListStoreProducts 返回店面商品数据，供商品模块在前端装配。
func (a *API) ListStoreProducts(c *gin.Context) {
	tenant, ok := a.resolveTenant(c)
	if !ok {
		return
	}

	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 12)
	result, err := a.products.ListPublished(tenant.ID, page, perPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "商品加载失败")
		return
	}

	items := make([]gin.H, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, gin.H{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"imageUrl":    p.ImageURL,
			"imageWidth":  p.ImageWidth,
			"imageHeight": p.ImageHeight,
			"priceCents":  p.PriceCents,
			"currency":    p.Currency,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"products":   items,
		"page":       result.Page,
		"perPage":    result.PerPage,
		"total":      result.Total,
		"totalPages": result.TotalPages,
	})
}
