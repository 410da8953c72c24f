package handler

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/storecraft/internal/block"
	"github.com/storecraft/internal/editor"
	"github.com/storecraft/internal/service"
)

// API 汇集各 HTTP 处理器共享的依赖。
type API struct {
	db       *gorm.DB
	log      *zap.Logger
	cache    *service.RenderCache
	pages    *service.PageService
	products *service.ProductService
	settings *service.SiteSettingService
	tenants  *service.TenantService
	editors  *editor.Manager

	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, logger *zap.Logger, uploadDir, uploadURL string) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache := service.NewRenderCache()

	return &API{
		db:        gdb,
		log:       logger,
		cache:     cache,
		pages:     service.NewPageService(gdb, cache, logger),
		products:  service.NewProductService(gdb),
		settings:  service.NewSiteSettingService(gdb),
		tenants:   service.NewTenantService(gdb),
		editors:   editor.NewManager(),
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

// Cache 暴露渲染缓存，便于路由层或脚本做主动失效。
func (a *API) Cache() *service.RenderCache {
	return a.cache
}

// pageGateway 把页面持久化服务适配成编辑器的保存网关。
type pageGateway struct {
	pages *service.PageService
}

func (g pageGateway) UpdateMeta(pageID uint, draft editor.MetaDraft) error {
	_, err := g.pages.UpdateMeta(pageID, service.PageInput{
		Title:           draft.Title,
		Slug:            draft.Slug,
		IsHomepage:      draft.IsHomepage,
		Published:       draft.Published,
		ShowInNav:       draft.ShowInNav,
		NavOrder:        draft.NavOrder,
		BackgroundColor: draft.BackgroundColor,
		SEOTitle:        draft.SEOTitle,
		SEODescription:  draft.SEODescription,
		SEOKeywords:     draft.SEOKeywords,
	})
	return err
}

func (g pageGateway) UpdateContent(pageID uint, blocks []block.Block) error {
	_, err := g.pages.UpdateContent(pageID, blocks)
	return err
}
