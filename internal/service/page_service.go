package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/storecraft/internal/block"
	"github.com/storecraft/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrPageTitleMissing = errors.New("page title is required")
	ErrSlugInvalid      = errors.New("slug format is invalid")
	ErrSlugTaken        = errors.New("slug already used")
	ErrDeleteHomepage   = errors.New("homepage cannot be deleted")
	ErrDeleteLastPage   = errors.New("last page cannot be deleted")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// PageInput 是创建或更新页面元数据时接受的字段。
type PageInput struct {
	Title           string
	Slug            string
	IsHomepage      bool
	Published       bool
	ShowInNav       bool
	NavOrder        int
	BackgroundColor string
	SEOTitle        string
	SEODescription  string
	SEOKeywords     string
}

// PageService 是页面文档的持久化网关：行级操作按请求独立执行，
// 不跨行包事务；页面整体覆盖写入，并发编辑采取后写覆盖。
type PageService struct {
	db    *gorm.DB
	cache *RenderCache
	log   *zap.Logger
}

// NewPageService 构造 PageService。cache 可为 nil（不做缓存失效通知）。
func NewPageService(gdb *gorm.DB, cache *RenderCache, logger *zap.Logger) *PageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageService{db: gdb, cache: cache, log: logger}
}

func validateMeta(input *PageInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)

	if input.Title == "" {
		return ErrPageTitleMissing
	}
	if !slugPattern.MatchString(input.Slug) {
		return ErrSlugInvalid
	}
	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create 校验后建立一张空内容页面。请求设为首页时先清除同租户
// 其他页面的首页标记再写入本页，两次顺序写库、不包事务。
func (s *PageService) Create(tenantID uint, input PageInput) (*db.Page, error) {
	if err := validateMeta(&input); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&db.Page{}).
		Where("tenant_id = ? AND slug = ?", tenantID, input.Slug).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	if input.IsHomepage {
		if err := s.clearHomepageFlag(tenantID, 0); err != nil {
			return nil, err
		}
	}

	page := db.Page{
		TenantID:        tenantID,
		Title:           input.Title,
		Slug:            input.Slug,
		IsHomepage:      input.IsHomepage,
		Published:       input.Published,
		ShowInNav:       input.ShowInNav,
		NavOrder:        input.NavOrder,
		BackgroundColor: strings.TrimSpace(input.BackgroundColor),
		SEOTitle:        input.SEOTitle,
		SEODescription:  input.SEODescription,
		SEOKeywords:     input.SEOKeywords,
		Content:         "[]",
	}
	if err := s.db.Create(&page).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	if input.ShowInNav {
		entry := db.NavEntry{
			TenantID: tenantID,
			PageID:   page.ID,
			Title:    page.Title,
			Position: input.NavOrder,
		}
		if err := s.db.Create(&entry).Error; err != nil {
			return nil, err
		}
	}

	s.invalidate(&page, "")
	return &page, nil
}

// UpdateMeta 更新页面元数据。首页排他性以"非本页"为范围生效；
// 标题变化会同步到导航条目。
func (s *PageService) UpdateMeta(pageID uint, input PageInput) (*db.Page, error) {
	page, err := s.GetByID(pageID)
	if err != nil {
		return nil, err
	}

	if err := validateMeta(&input); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&db.Page{}).
		Where("tenant_id = ? AND slug = ? AND id <> ?", page.TenantID, input.Slug, page.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	if input.IsHomepage && !page.IsHomepage {
		if err := s.clearHomepageFlag(page.TenantID, page.ID); err != nil {
			return nil, err
		}
	}

	previousSlug := page.Slug

	page.Title = input.Title
	page.Slug = input.Slug
	page.IsHomepage = input.IsHomepage
	page.Published = input.Published
	page.ShowInNav = input.ShowInNav
	page.NavOrder = input.NavOrder
	page.BackgroundColor = strings.TrimSpace(input.BackgroundColor)
	page.SEOTitle = input.SEOTitle
	page.SEODescription = input.SEODescription
	page.SEOKeywords = input.SEOKeywords

	if err := s.db.Save(page).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	if err := s.syncNavEntry(page); err != nil {
		return nil, err
	}

	s.invalidate(page, previousSlug)
	return page, nil
}

// UpdateContent 以整列覆盖方式写入模块列表（不做差异合并）。
// 模块 ID 在边界处补齐，属性形态不做校验。
func (s *PageService) UpdateContent(pageID uint, blocks []block.Block) (*db.Page, error) {
	page, err := s.GetByID(pageID)
	if err != nil {
		return nil, err
	}

	encoded, err := block.Encode(block.Normalize(blocks))
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(page).Update("content", encoded).Error; err != nil {
		return nil, err
	}
	page.Content = encoded

	s.invalidate(page, "")
	return page, nil
}

// Delete 删除页面。首页与租户仅存的最后一页拒绝删除，
// 删除成功时一并移除关联的导航条目。
func (s *PageService) Delete(pageID uint) error {
	page, err := s.GetByID(pageID)
	if err != nil {
		return err
	}

	if page.IsHomepage {
		return ErrDeleteHomepage
	}

	var count int64
	if err := s.db.Model(&db.Page{}).
		Where("tenant_id = ?", page.TenantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count <= 1 {
		return ErrDeleteLastPage
	}

	if err := s.db.Delete(page).Error; err != nil {
		return err
	}
	if err := s.db.Where("page_id = ?", page.ID).Delete(&db.NavEntry{}).Error; err != nil {
		return err
	}

	s.invalidate(page, "")
	return nil
}

// GetByID 按主键读取页面。
func (s *PageService) GetByID(pageID uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetBySlug 读取租户下指定 slug 的页面。
func (s *PageService) GetBySlug(tenantID uint, slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Homepage 返回租户的首页；未设置时回退到最早建立的页面。
func (s *PageService) Homepage(tenantID uint) (*db.Page, error) {
	var page db.Page
	err := s.db.Where("tenant_id = ? AND is_homepage = ?", tenantID, true).First(&page).Error
	if err == nil {
		return &page, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Where("tenant_id = ?", tenantID).Order("id asc").First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// List 返回租户全部页面，首页在前其余按导航顺序。
func (s *PageService) List(tenantID uint) ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Where("tenant_id = ?", tenantID).
		Order("is_homepage desc, nav_order asc, id asc").
		Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// NavEntries 返回租户的导航条目（按位置排序）。
func (s *PageService) NavEntries(tenantID uint) ([]db.NavEntry, error) {
	var entries []db.NavEntry
	if err := s.db.Where("tenant_id = ?", tenantID).
		Order("position asc, id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Blocks 解析页面内容列存储的模块列表。
func (s *PageService) Blocks(page *db.Page) ([]block.Block, error) {
	return block.Decode(page.Content)
}

// clearHomepageFlag 清除同租户其他页面的首页标记（先清后设）。
func (s *PageService) clearHomepageFlag(tenantID, exceptPageID uint) error {
	query := s.db.Model(&db.Page{}).Where("tenant_id = ? AND is_homepage = ?", tenantID, true)
	if exceptPageID != 0 {
		query = query.Where("id <> ?", exceptPageID)
	}
	return query.Update("is_homepage", false).Error
}

// syncNavEntry 让导航条目跟随页面的 show_in_nav 开关与标题。
func (s *PageService) syncNavEntry(page *db.Page) error {
	var entry db.NavEntry
	err := s.db.Where("page_id = ?", page.ID).First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !page.ShowInNav {
			return nil
		}
		return s.db.Create(&db.NavEntry{
			TenantID: page.TenantID,
			PageID:   page.ID,
			Title:    page.Title,
			Position: page.NavOrder,
		}).Error
	}
	if err != nil {
		return err
	}

	if !page.ShowInNav {
		return s.db.Delete(&entry).Error
	}

	entry.Title = page.Title
	entry.Position = page.NavOrder
	return s.db.Save(&entry).Error
}

// invalidate 通知缓存：后台列表、编辑器视图、店面首页与页面路径已过期。
func (s *PageService) invalidate(page *db.Page, previousSlug string) {
	if s.cache == nil {
		return
	}

	keys := []string{
		CacheKeyAdminPages(page.TenantID),
		CacheKeyEditor(page.ID),
		CacheKeyStoreRoot(page.TenantID),
		CacheKeyStorePage(page.TenantID, page.Slug),
	}
	if previousSlug != "" && previousSlug != page.Slug {
		keys = append(keys, CacheKeyStorePage(page.TenantID, previousSlug))
	}

	s.cache.Invalidate(keys...)
	s.log.Debug("render cache invalidated",
		zap.Uint("page_id", page.ID),
		zap.Strings("keys", keys))
}
