package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storecraft/internal/db"
	"github.com/storecraft/internal/service"
)

type productPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ImageWidth  int    `json:"imageWidth"`
	ImageHeight int    `json:"imageHeight"`
	PriceCents  int64  `json:"priceCents"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	SortOrder   int    `json:"sortOrder"`
}

func (p productPayload) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		ImageWidth:  p.ImageWidth,
		ImageHeight: p.ImageHeight,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		Status:      p.Status,
		SortOrder:   p.SortOrder,
	}
}

func productView(product *db.Product) gin.H {
	return gin.H{
		"id":          product.ID,
		"name":        product.Name,
		"description": product.Description,
		"imageUrl":    product.ImageURL,
		"imageWidth":  product.ImageWidth,
		"imageHeight": product.ImageHeight,
		"priceCents":  product.PriceCents,
		"currency":    product.Currency,
		"status":      product.Status,
		"sortOrder":   product.SortOrder,
		"updatedAt":   product.UpdatedAt,
	}
}

// ListProducts 返回当前商店的商品列表（后台管理，支持搜索与筛选）。
func (a *API) ListProducts(c *gin.Context) {
	filter := service.ProductFilter{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		Page:    parseIntQuery(c, "page", 1),
		PerPage: parseIntQuery(c, "per_page", 20),
	}

	result, err := a.products.List(currentTenantID(c), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "加载商品列表失败")
		return
	}

	views := make([]gin.H, 0, len(result.Items))
	for i := range result.Items {
		views = append(views, productView(&result.Items[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"products":   views,
		"page":       result.Page,
		"perPage":    result.PerPage,
		"total":      result.Total,
		"totalPages": result.TotalPages,
	})
}

// CreateProduct 新建商品。
func (a *API) CreateProduct(c *gin.Context) {
	var payload productPayload
	if !bindJSON(c, &payload, "商品数据格式不正确") {
		return
	}

	product, err := a.products.Create(currentTenantID(c), payload.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "商品已创建", "product": productView(product)})
}

// UpdateProduct 更新商品信息。
func (a *API) UpdateProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "商品编号不正确")
		return
	}

	var payload productPayload
	if !bindJSON(c, &payload, "商品数据格式不正确") {
		return
	}

	if !a.productBelongsToTenant(c, id) {
		return
	}

	product, err := a.products.Update(id, payload.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "商品已更新", "product": productView(product)})
}

// DeleteProduct 删除商品。
func (a *API) DeleteProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "商品编号不正确")
		return
	}

	if !a.productBelongsToTenant(c, id) {
		return
	}

	if err := a.products.Delete(id); err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "商品已删除"})
}

func (a *API) productBelongsToTenant(c *gin.Context, id uint) bool {
	product, err := a.products.Get(id)
	if err != nil || product.TenantID != currentTenantID(c) {
		respondError(c, http.StatusNotFound, "商品不存在")
		return false
	}
	return true
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "商品不存在")
	case errors.Is(err, service.ErrProductNameMissing):
		respondError(c, http.StatusBadRequest, "请填写商品名称")
	case errors.Is(err, service.ErrProductPriceInvalid):
		respondError(c, http.StatusBadRequest, "商品价格不正确")
	case errors.Is(err, service.ErrProductStatusInvalid):
		respondError(c, http.StatusBadRequest, "商品状态不正确")
	default:
		respondError(c, http.StatusInternalServerError, "保存失败，请稍后重试")
	}
}
