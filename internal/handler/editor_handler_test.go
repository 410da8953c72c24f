package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func registerEditorRoutes(api *API) func(*gin.RouterGroup) {
	return func(g *gin.RouterGroup) {
		g.POST("/admin/api/pages", api.CreatePage)
		g.POST("/admin/api/editor/:id/open", api.OpenEditor)
		g.GET("/admin/api/editor/:id/state", api.EditorState)
		g.GET("/admin/api/editor/:id/preview", api.EditorPreview)
		g.POST("/admin/api/editor/:id/blocks", api.AddEditorBlock)
		g.DELETE("/admin/api/editor/:id/blocks/:blockId", api.RemoveEditorBlock)
		g.PATCH("/admin/api/editor/:id/blocks/:blockId", api.PatchEditorBlock)
		g.POST("/admin/api/editor/:id/select", api.SelectEditorBlock)
		g.POST("/admin/api/editor/:id/save", api.SaveEditor)
	}
}

func createEditorPage(t *testing.T, r http.Handler) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/admin/api/pages", map[string]interface{}{
		"title": "編輯測試", "slug": "edit-me", "published": true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create page: %d (%s)", w.Code, w.Body.String())
	}
	page := decodeBody(t, w)["page"].(map[string]interface{})
	return uint(page["id"].(float64))
}

func TestOpenEditorReturnsStateAndPalette(t *testing.T) {
	api, tenant, cleanup := setupHandlerTestDB(t)
	defer cleanup()
	r := newTestRouter(api, tenant.ID, registerEditorRoutes(api))
	id := createEditorPage(t, r)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/open", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	palette, ok := body["palette"].([]interface{})
	if !ok || len(palette) == 0 {
		t.Fatalf("expected non-empty block palette")
	}
	state := body["state"].(map[string]interface{})
	if state["selectedBlockId"] != "" {
		t.Fatalf("expected no selection on open, got %v", state["selectedBlockId"])
	}
}

func TestEditorBlockLifecycle(t *testing.T) {
	api, tenant, cleanup := setupHandlerTestDB(t)
	defer cleanup()
	r := newTestRouter(api, tenant.ID, registerEditorRoutes(api))
	id := createEditorPage(t, r)
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/open", id), nil)

	// 新增模块
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/blocks", id), map[string]interface{}{"type": "hero"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", w.Code, w.Body.String())
	}
	added := decodeBody(t, w)["block"].(map[string]interface{})
	blockID := added["id"].(string)
	if added["type"] != "hero" {
		t.Fatalf("expected hero block, got %v", added["type"])
	}

	// 未知类型被拒绝
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/blocks", id), map[string]interface{}{"type": "bogus"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown type, got %d", w.Code)
	}

	// 修改属性后在状态里可见
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/api/editor/%d/blocks/%s", id, blockID), map[string]interface{}{
		"props": map[string]interface{}{"title": "新標題"},
	})
	state := decodeBody(t, w)["state"].(map[string]interface{})
	blocks := state["blocks"].([]interface{})
	props := blocks[0].(map[string]interface{})["props"].(map[string]interface{})
	if props["title"] != "新標題" {
		t.Fatalf("expected patched title, got %v", props["title"])
	}

	// 选中后预览带描边标记
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/select", id), map[string]interface{}{"blockId": blockID})
	req := doJSON(t, r, http.MethodGet, fmt.Sprintf("/admin/api/editor/%d/preview", id), nil)
	if req.Code != http.StatusOK {
		t.Fatalf("expected status 200 preview, got %d", req.Code)
	}
	if !strings.Contains(req.Body.String(), "block-selected") {
		t.Fatalf("expected preview to mark selected block")
	}

	// 删除模块并清空选中
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/api/editor/%d/blocks/%s", id, blockID), nil)
	state = decodeBody(t, w)["state"].(map[string]interface{})
	if len(state["blocks"].([]interface{})) != 0 {
		t.Fatalf("expected empty document after removal")
	}
	if state["selectedBlockId"] != "" {
		t.Fatalf("expected selection cleared after removal")
	}
}

func TestSaveEditorPersistsAndRejectsReentry(t *testing.T) {
	api, tenant, cleanup := setupHandlerTestDB(t)
	defer cleanup()
	r := newTestRouter(api, tenant.ID, registerEditorRoutes(api))
	id := createEditorPage(t, r)
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/open", id), nil)
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/blocks", id), map[string]interface{}{"type": "text"})

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/save", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 on save, got %d (%s)", w.Code, w.Body.String())
	}

	page, err := api.pages.GetByID(id)
	if err != nil {
		t.Fatalf("failed to reload page: %v", err)
	}
	blocks, err := api.pages.Blocks(page)
	if err != nil || len(blocks) != 1 {
		t.Fatalf("expected one persisted block, got %d (err %v)", len(blocks), err)
	}

	// 成功提示未消退前重入保存被拒绝
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/api/editor/%d/save", id), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409 on reentrant save, got %d", w.Code)
	}
}

func TestEditorStateRequiresOpenSession(t *testing.T) {
	api, tenant, cleanup := setupHandlerTestDB(t)
	defer cleanup()
	r := newTestRouter(api, tenant.ID, registerEditorRoutes(api))
	id := createEditorPage(t, r)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/admin/api/editor/%d/state", id), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 without open session, got %d", w.Code)
	}
}
