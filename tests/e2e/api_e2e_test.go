package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storecraft/internal/db"
	"github.com/storecraft/internal/handler"
	"github.com/storecraft/internal/router"
)

type e2eSuite struct {
	handler http.Handler
	public  *localClient
	admin   *localClient
	tenant  db.Tenant
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(h http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: h, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func TestE2E_StoreBuilder(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	t.Run("page management", suite.testPageManagement)
	t.Run("editor session", suite.testEditorSession)
	t.Run("storefront", suite.testStorefront)
	t.Run("products and settings", suite.testProductsAndSettings)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.Tenant{},
		&db.User{},
		&db.Page{},
		&db.NavEntry{},
		&db.Product{},
		&db.SiteSetting{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	db.DB = gdb

	tenant := db.Tenant{Name: "E2E 商店"}
	if err := gdb.Create(&tenant).Error; err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}
	if err := db.EnsureUser(tenant.ID, "admin", "e2e-secret"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	api := handler.NewAPI(gdb, nil, t.TempDir(), "/static/uploads")
	engine := router.SetupRouter(api, "test-session-secret")

	return &e2eSuite{
		handler: engine,
		public:  newLocalClient(engine, false),
		admin:   newLocalClient(engine, true),
		tenant:  tenant,
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()

	form := url.Values{}
	form.Set("username", "admin")
	form.Set("password", "e2e-secret")
	req := httptest.NewRequest(http.MethodPost, "http://example.test/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.admin.Do(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) doJSON(t *testing.T, client *localClient, method, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, "http://example.test"+path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	var decoded map[string]interface{}
	if len(raw) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("failed to decode response: %v (body: %s)", err, raw)
		}
	}
	return resp, decoded
}

func (s *e2eSuite) fetchHTML(t *testing.T, path string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "http://example.test"+path, nil)
	resp, err := s.public.Do(req)
	if err != nil {
		t.Fatalf("fetch %s failed: %v", path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, string(raw)
}

func pageID(t *testing.T, body map[string]interface{}) uint {
	t.Helper()
	page, ok := body["page"].(map[string]interface{})
	if !ok {
		t.Fatalf("response missing page object: %v", body)
	}
	return uint(page["id"].(float64))
}

func (s *e2eSuite) testPageManagement(t *testing.T) {
	// 建立首页与子页面
	resp, body := s.doJSON(t, s.admin, http.MethodPost, "/admin/api/pages", map[string]interface{}{
		"title": "首頁", "slug": "home", "isHomepage": true, "published": true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating homepage, got %d", resp.StatusCode)
	}
	homeID := pageID(t, body)

	resp, body = s.doJSON(t, s.admin, http.MethodPost, "/admin/api/pages", map[string]interface{}{
		"title": "關於我們", "slug": "about", "published": true, "showInNav": true, "navOrder": 1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating about page, got %d", resp.StatusCode)
	}
	aboutID := pageID(t, body)

	// 路径冲突
	resp, _ = s.doJSON(t, s.admin, http.MethodPost, "/admin/api/pages", map[string]interface{}{
		"title": "重複", "slug": "about",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate slug, got %d", resp.StatusCode)
	}

	// 首页互斥：将关于页设为首页后，原首页应被清除标记
	resp, _ = s.doJSON(t, s.admin, http.MethodPut, fmt.Sprintf("/admin/api/pages/%d/meta", aboutID), map[string]interface{}{
		"title": "關於我們", "slug": "about", "isHomepage": true, "published": true, "showInNav": true, "navOrder": 1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 promoting about to homepage, got %d", resp.StatusCode)
	}
	_, body = s.doJSON(t, s.admin, http.MethodGet, fmt.Sprintf("/admin/api/pages/%d", homeID), nil)
	if page := body["page"].(map[string]interface{}); page["isHomepage"].(bool) {
		t.Fatalf("expected previous homepage flag to be cleared")
	}

	// 还原首页
	resp, _ = s.doJSON(t, s.admin, http.MethodPut, fmt.Sprintf("/admin/api/pages/%d/meta", homeID), map[string]interface{}{
		"title": "首頁", "slug": "home", "isHomepage": true, "published": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 restoring homepage, got %d", resp.StatusCode)
	}

	// 首页删除保护
	resp, body = s.doJSON(t, s.admin, http.MethodDelete, fmt.Sprintf("/admin/api/pages/%d", homeID), nil)
	if resp.StatusCode != http.StatusConflict || body["reason"] != "is_homepage" {
		t.Fatalf("expected homepage delete guard, got %d %v", resp.StatusCode, body["reason"])
	}
}

func (s *e2eSuite) testEditorSession(t *testing.T) {
	_, body := s.doJSON(t, s.admin, http.MethodGet, "/admin/api/pages", nil)
	pages := body["pages"].([]interface{})
	var homeID uint
	for _, p := range pages {
		page := p.(map[string]interface{})
		if page["slug"] == "home" {
			homeID = uint(page["id"].(float64))
		}
	}
	if homeID == 0 {
		t.Fatalf("homepage not found in listing")
	}

	resp, body := s.doJSON(t, s.admin, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/open", homeID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 opening editor, got %d", resp.StatusCode)
	}
	if palette := body["palette"].([]interface{}); len(palette) == 0 {
		t.Fatalf("expected block palette")
	}

	// 组装文档：hero + 文字 + 商品
	_, body = s.doJSON(t, s.admin, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/blocks", homeID), map[string]interface{}{"type": "hero"})
	heroID := body["block"].(map[string]interface{})["id"].(string)
	s.doJSON(t, s.admin, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/blocks", homeID), map[string]interface{}{"type": "text"})
	s.doJSON(t, s.admin, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/blocks", homeID), map[string]interface{}{"type": "products"})

	s.doJSON(t, s.admin, http.MethodPatch, fmt.Sprintf("/admin/api/editor/%d/blocks/%s", homeID, heroID), map[string]interface{}{
		"props": map[string]interface{}{"title": "秋季新品上市"},
	})

	// 拖拽排序：把 hero 拖到第二位再拖回
	s.doJSON(t, s.admin, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/drag", homeID), map[string]interface{}{"action": "start", "index": 0})
	s.doJSON(t, s.admin, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/drag", homeID), map[string]interface{}{"action": "over", "index": 1})
	_, body = s.doJSON(t, s.admin, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/drag", homeID), map[string]interface{}{"action": "end"})
	state := body["state"].(map[string]interface{})
	blocks := state["blocks"].([]interface{})
	if blocks[1].(map[string]interface{})["id"] != heroID {
		t.Fatalf("expected hero moved to second position")
	}
	_, body = s.doJSON(t, s.admin, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/move", homeID), map[string]interface{}{"from": 1, "to": 0})
	state = body["state"].(map[string]interface{})
	blocks = state["blocks"].([]interface{})
	if blocks[0].(map[string]interface{})["id"] != heroID {
		t.Fatalf("expected hero moved back to first position")
	}

	// 保存并确认落库
	resp, _ = s.doJSON(t, s.admin, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/save", homeID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 saving editor, got %d", resp.StatusCode)
	}

	_, body = s.doJSON(t, s.admin, http.MethodGet, fmt.Sprintf("/admin/api/pages/%d", homeID), nil)
	saved := body["page"].(map[string]interface{})["blocks"].([]interface{})
	if len(saved) != 3 {
		t.Fatalf("expected 3 persisted blocks, got %d", len(saved))
	}
}

func (s *e2eSuite) testStorefront(t *testing.T) {
	status, html := s.fetchHTML(t, "/")
	if status != http.StatusOK {
		t.Fatalf("expected 200 on store home, got %d", status)
	}
	if !strings.Contains(html, "秋季新品上市") {
		t.Fatalf("expected saved hero content on storefront")
	}
	if !strings.Contains(html, "關於我們") {
		t.Fatalf("expected nav entry on storefront")
	}

	status, _ = s.fetchHTML(t, "/about")
	if status != http.StatusOK {
		t.Fatalf("expected 200 on about page, got %d", status)
	}

	status, _ = s.fetchHTML(t, "/missing-page")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 on unknown slug, got %d", status)
	}
}

func (s *e2eSuite) testProductsAndSettings(t *testing.T) {
	resp, _ := s.doJSON(t, s.admin, http.MethodPost, "/admin/api/products", map[string]interface{}{
		"name": "手沖咖啡壺", "priceCents": 128000, "description": "細口壺嘴",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating product, got %d", resp.StatusCode)
	}

	_, body := s.doJSON(t, s.public, http.MethodGet, "/api/store/products", nil)
	products := body["products"].([]interface{})
	if len(products) != 1 {
		t.Fatalf("expected one storefront product, got %d", len(products))
	}

	// 更新店面设置并确认店面缓存失效
	resp, _ = s.doJSON(t, s.admin, http.MethodPut, "/admin/api/settings", map[string]interface{}{
		"siteName": "改名商店", "themeColor": "#222222", "footerText": "新頁腳",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 updating settings, got %d", resp.StatusCode)
	}

	status, html := s.fetchHTML(t, "/")
	if status != http.StatusOK {
		t.Fatalf("expected 200 on store home, got %d", status)
	}
	if !strings.Contains(html, "改名商店") || !strings.Contains(html, "新頁腳") {
		t.Fatalf("expected updated settings on storefront")
	}
}
