package service

import (
	"errors"
	"testing"

	"github.com/storecraft/internal/block"
	"github.com/storecraft/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Tenant{}, &db.Page{}, &db.NavEntry{}, &db.Product{}, &db.SiteSetting{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	for _, table := range []string{"pages", "nav_entries", "products", "site_settings", "tenants"} {
		if err := gdb.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset table %s: %v", table, err)
		}
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func newTestPageService() (*PageService, *RenderCache) {
	cache := NewRenderCache()
	return NewPageService(db.DB, cache, nil), cache
}

func TestCreatePageStartsEmpty(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()
	page, err := svc.Create(1, PageInput{Title: "About", Slug: "about-us"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	blocks, err := svc.Blocks(page)
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected empty content, got %d blocks", len(blocks))
	}
}

func TestCreatePageValidation(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()

	if _, err := svc.Create(1, PageInput{Title: "  ", Slug: "ok"}); !errors.Is(err, ErrPageTitleMissing) {
		t.Fatalf("expected ErrPageTitleMissing, got %v", err)
	}
	for _, slug := range []string{"", "Has Space", "UPPER", "中文", "under_score"} {
		if _, err := svc.Create(1, PageInput{Title: "T", Slug: slug}); !errors.Is(err, ErrSlugInvalid) {
			t.Fatalf("slug %q: expected ErrSlugInvalid, got %v", slug, err)
		}
	}
}

func TestSlugUniquePerTenant(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()
	if _, err := svc.Create(1, PageInput{Title: "A", Slug: "about"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Create(1, PageInput{Title: "B", Slug: "about"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// 不同租户可以使用相同 slug
	if _, err := svc.Create(2, PageInput{Title: "B", Slug: "about"}); err != nil {
		t.Fatalf("expected same slug allowed for another tenant, got %v", err)
	}

	pages, err := svc.List(1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected conflict to leave existing data unchanged, got %d pages", len(pages))
	}
}

func TestUpdateMetaSlugConflict(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()
	a, _ := svc.Create(1, PageInput{Title: "A", Slug: "a"})
	b, _ := svc.Create(1, PageInput{Title: "B", Slug: "b"})

	input := PageInput{Title: "B", Slug: "a"}
	if _, err := svc.UpdateMeta(b.ID, input); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// 自己保留原 slug 不算冲突
	if _, err := svc.UpdateMeta(a.ID, PageInput{Title: "A2", Slug: "a"}); err != nil {
		t.Fatalf("expected keeping own slug to succeed, got %v", err)
	}
}

func TestHomepageExclusivityOnCreate(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()
	first, _ := svc.Create(1, PageInput{Title: "First", Slug: "first", IsHomepage: true})
	second, err := svc.Create(1, PageInput{Title: "Second", Slug: "second", IsHomepage: true})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	reloaded, _ := svc.GetByID(first.ID)
	if reloaded.IsHomepage {
		t.Fatal("expected first page homepage flag cleared")
	}
	if got, _ := svc.GetByID(second.ID); !got.IsHomepage {
		t.Fatal("expected second page to be homepage")
	}
}

func TestHomepageExclusivityOnUpdate(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()
	a, _ := svc.Create(1, PageInput{Title: "A", Slug: "a", IsHomepage: true})
	b, _ := svc.Create(1, PageInput{Title: "B", Slug: "b"})

	if _, err := svc.UpdateMeta(b.ID, PageInput{Title: "B", Slug: "b", IsHomepage: true}); err != nil {
		t.Fatalf("UpdateMeta returned error: %v", err)
	}

	reloadedA, _ := svc.GetByID(a.ID)
	reloadedB, _ := svc.GetByID(b.ID)
	if reloadedA.IsHomepage {
		t.Fatal("expected A homepage flag cleared")
	}
	if !reloadedB.IsHomepage {
		t.Fatal("expected B to be homepage")
	}

	var count int64
	db.DB.Model(&db.Page{}).Where("tenant_id = ? AND is_homepage = ?", 1, true).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one homepage, got %d", count)
	}
}

func TestUpdateContentOverwritesWholeList(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()
	page, _ := svc.Create(1, PageInput{Title: "P", Slug: "p"})

	blocks := []block.Block{block.New(block.TypeText)}
	blocks[0].Props["content"] = "Hello"
	if _, err := svc.UpdateContent(page.ID, blocks); err != nil {
		t.Fatalf("UpdateContent returned error: %v", err)
	}

	reloaded, _ := svc.GetByID(page.ID)
	decoded, err := svc.Blocks(reloaded)
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Type != block.TypeText {
		t.Fatalf("expected one text block, got %+v", decoded)
	}
	if decoded[0].Props["content"] != "Hello" {
		t.Fatalf("expected patched content persisted, got %v", decoded[0].Props)
	}

	// 再次覆盖为空列表
	if _, err := svc.UpdateContent(page.ID, nil); err != nil {
		t.Fatalf("UpdateContent returned error: %v", err)
	}
	reloaded, _ = svc.GetByID(page.ID)
	decoded, _ = svc.Blocks(reloaded)
	if len(decoded) != 0 {
		t.Fatalf("expected whole-list overwrite to empty, got %d", len(decoded))
	}
}

func TestDeleteGuards(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()
	home, _ := svc.Create(1, PageInput{Title: "Home", Slug: "home", IsHomepage: true})
	other, _ := svc.Create(1, PageInput{Title: "Other", Slug: "other"})

	if err := svc.Delete(home.ID); !errors.Is(err, ErrDeleteHomepage) {
		t.Fatalf("expected ErrDeleteHomepage, got %v", err)
	}

	if err := svc.Delete(other.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	pages, _ := svc.List(1)
	if len(pages) != 1 {
		t.Fatalf("expected page removed from list reads, got %d", len(pages))
	}

	// 仅剩一页时拒绝删除（即使先取消首页标记）
	sole, _ := svc.GetByID(home.ID)
	if _, err := svc.UpdateMeta(sole.ID, PageInput{Title: "Home", Slug: "home"}); err != nil {
		t.Fatalf("UpdateMeta returned error: %v", err)
	}
	if err := svc.Delete(home.ID); !errors.Is(err, ErrDeleteLastPage) {
		t.Fatalf("expected ErrDeleteLastPage, got %v", err)
	}
}

func TestNavEntryLifecycle(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()
	svc.Create(1, PageInput{Title: "Home", Slug: "home", IsHomepage: true})
	page, _ := svc.Create(1, PageInput{Title: "Shop", Slug: "shop", ShowInNav: true, NavOrder: 2})

	entries, _ := svc.NavEntries(1)
	if len(entries) != 1 || entries[0].Title != "Shop" {
		t.Fatalf("expected nav entry mirroring title, got %+v", entries)
	}

	// 标题更新同步到导航
	if _, err := svc.UpdateMeta(page.ID, PageInput{Title: "商店", Slug: "shop", ShowInNav: true, NavOrder: 2}); err != nil {
		t.Fatalf("UpdateMeta returned error: %v", err)
	}
	entries, _ = svc.NavEntries(1)
	if entries[0].Title != "商店" {
		t.Fatalf("expected nav title synced, got %s", entries[0].Title)
	}

	// 删除页面时级联移除导航条目
	if err := svc.Delete(page.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	entries, _ = svc.NavEntries(1)
	if len(entries) != 0 {
		t.Fatalf("expected nav entry removed with page, got %+v", entries)
	}
}

func TestWritesInvalidateRenderCache(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, cache := newTestPageService()
	page, _ := svc.Create(1, PageInput{Title: "Home", Slug: "home"})

	cache.Set(CacheKeyStoreRoot(1), "cached-root")
	cache.Set(CacheKeyStorePage(1, "home"), "cached-page")
	cache.Set(CacheKeyAdminPages(1), "cached-admin")
	cache.Set(CacheKeyEditor(page.ID), "cached-editor")

	if _, err := svc.UpdateContent(page.ID, nil); err != nil {
		t.Fatalf("UpdateContent returned error: %v", err)
	}

	for _, key := range []string{
		CacheKeyStoreRoot(1),
		CacheKeyStorePage(1, "home"),
		CacheKeyAdminPages(1),
		CacheKeyEditor(page.ID),
	} {
		if _, ok := cache.Get(key); ok {
			t.Fatalf("expected key %s invalidated", key)
		}
	}
}

func TestSlugRenameInvalidatesOldPath(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, cache := newTestPageService()
	page, _ := svc.Create(1, PageInput{Title: "P", Slug: "old"})

	cache.Set(CacheKeyStorePage(1, "old"), "cached")
	if _, err := svc.UpdateMeta(page.ID, PageInput{Title: "P", Slug: "new"}); err != nil {
		t.Fatalf("UpdateMeta returned error: %v", err)
	}

	if _, ok := cache.Get(CacheKeyStorePage(1, "old")); ok {
		t.Fatal("expected old slug path invalidated after rename")
	}
}

func TestHomepageFallsBackToOldestPage(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc, _ := newTestPageService()
	first, _ := svc.Create(1, PageInput{Title: "First", Slug: "first"})
	svc.Create(1, PageInput{Title: "Second", Slug: "second"})

	home, err := svc.Homepage(1)
	if err != nil {
		t.Fatalf("Homepage returned error: %v", err)
	}
	if home.ID != first.ID {
		t.Fatalf("expected fallback to oldest page, got %d", home.ID)
	}
}
