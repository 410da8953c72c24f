package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storecraft/internal/db"
	"github.com/storecraft/internal/service"
)

type pagePayload struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	IsHomepage      bool   `json:"isHomepage"`
	Published       bool   `json:"published"`
	ShowInNav       bool   `json:"showInNav"`
	NavOrder        int    `json:"navOrder"`
	BackgroundColor string `json:"backgroundColor"`
	SEOTitle        string `json:"seoTitle"`
	SEODescription  string `json:"seoDescription"`
	SEOKeywords     string `json:"seoKeywords"`
}

func (p pagePayload) toInput() service.PageInput {
	return service.PageInput{
		Title:           p.Title,
		Slug:            p.Slug,
		IsHomepage:      p.IsHomepage,
		Published:       p.Published,
		ShowInNav:       p.ShowInNav,
		NavOrder:        p.NavOrder,
		BackgroundColor: p.BackgroundColor,
		SEOTitle:        p.SEOTitle,
		SEODescription:  p.SEODescription,
		SEOKeywords:     p.SEOKeywords,
	}
}

func pageView(page *db.Page) gin.H {
	return gin.H{
		"id":              page.ID,
		"tenantId":        page.TenantID,
		"title":           page.Title,
		"slug":            page.Slug,
		"isHomepage":      page.IsHomepage,
		"published":       page.Published,
		"showInNav":       page.ShowInNav,
		"navOrder":        page.NavOrder,
		"backgroundColor": page.BackgroundColor,
		"seoTitle":        page.SEOTitle,
		"seoDescription":  page.SEODescription,
		"seoKeywords":     page.SEOKeywords,
		"updatedAt":       page.UpdatedAt,
	}
}

// ListPages 返回当前商店的全部页面（后台列表）。
func (a *API) ListPages(c *gin.Context) {
	tenantID := currentTenantID(c)
	pages, err := a.pages.List(tenantID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "加载页面列表失败")
		return
	}

	views := make([]gin.H, 0, len(pages))
	for i := range pages {
		views = append(views, pageView(&pages[i]))
	}
	c.JSON(http.StatusOK, gin.H{"pages": views})
}

// CreatePage 新建页面，内容为空白文档。
func (a *API) CreatePage(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload, "页面数据格式不正确") {
		return
	}

	page, err := a.pages.Create(currentTenantID(c), payload.toInput())
	if err != nil {
		respondPageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "页面已创建", "page": pageView(page)})
}

// GetPage 返回单个页面的元信息与模块内容。
func (a *API) GetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "页面编号不正确")
		return
	}

	page, err := a.pages.GetByID(id)
	if err != nil {
		respondPageError(c, err)
		return
	}
	if page.TenantID != currentTenantID(c) {
		respondError(c, http.StatusNotFound, "页面不存在")
		return
	}

	blocks, err := a.pages.Blocks(page)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "页面内容解析失败")
		return
	}

	view := pageView(page)
	view["blocks"] = blocks
	c.JSON(http.StatusOK, gin.H{"page": view})
}

// UpdatePageMeta 更新页面元信息（标题、路径、导航、SEO 等）。
func (a *API) UpdatePageMeta(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "页面编号不正确")
		return
	}

	var payload pagePayload
	if !bindJSON(c, &payload, "页面数据格式不正确") {
		return
	}

	if !a.pageBelongsToTenant(c, id) {
		return
	}

	page, err := a.pages.UpdateMeta(id, payload.toInput())
	if err != nil {
		respondPageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "页面已更新", "page": pageView(page)})
}

// DeletePage 删除页面；首页与最后一页受保护。
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "页面编号不正确")
		return
	}

	if !a.pageBelongsToTenant(c, id) {
		return
	}

	if err := a.pages.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrPageNotFound):
			respondError(c, http.StatusNotFound, "页面不存在")
		case errors.Is(err, service.ErrDeleteHomepage):
			c.JSON(http.StatusConflict, gin.H{"error": "首页不可删除，请先指定其他页面为首页", "reason": "is_homepage"})
		case errors.Is(err, service.ErrDeleteLastPage):
			c.JSON(http.StatusConflict, gin.H{"error": "商店至少需要保留一个页面", "reason": "last_page"})
		default:
			respondError(c, http.StatusInternalServerError, "删除页面失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "页面已删除"})
}

func (a *API) pageBelongsToTenant(c *gin.Context, id uint) bool {
	page, err := a.pages.GetByID(id)
	if err != nil || page.TenantID != currentTenantID(c) {
		respondError(c, http.StatusNotFound, "页面不存在")
		return false
	}
	return true
}

func respondPageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound):
		respondError(c, http.StatusNotFound, "页面不存在")
	case errors.Is(err, service.ErrPageTitleMissing):
		respondError(c, http.StatusBadRequest, "请填写页面标题")
	case errors.Is(err, service.ErrSlugInvalid):
		respondError(c, http.StatusBadRequest, "页面路径仅允许小写字母、数字与连字符")
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, http.StatusConflict, "页面路径已被占用")
	default:
		respondError(c, http.StatusInternalServerError, "保存失败，请稍后重试")
	}
}
