package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storecraft/internal/block"
	"github.com/storecraft/internal/editor"
	"github.com/storecraft/internal/render"
)

// OpenEditor 为指定页面打开一个编辑会话，并把页面文档载入内存。
func (a *API) OpenEditor(c *gin.Context) {
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

	meta := editor.MetaDraft{
		Title:           page.Title,
		Slug:            page.Slug,
		IsHomepage:      page.IsHomepage,
		Published:       page.Published,
		ShowInNav:       page.ShowInNav,
		NavOrder:        page.NavOrder,
		BackgroundColor: page.BackgroundColor,
		SEOTitle:        page.SEOTitle,
		SEODescription:  page.SEODescription,
		SEOKeywords:     page.SEOKeywords,
	}
	ctrl := editor.NewController(page.ID, meta, blocks, pageGateway{pages: a.pages})
	a.editors.Put(sessionKey(c), page.ID, ctrl)

	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot(), "palette": blockPalette()})
}

// CloseEditor 丢弃编辑会话，未保存的修改随之丢失。
func (a *API) CloseEditor(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "页面编号不正确")
		return
	}

	a.editors.Drop(sessionKey(c), id)
	c.JSON(http.StatusOK, gin.H{"message": "编辑会话已关闭"})
}

// EditorState 返回当前编辑会话的状态快照。
func (a *API) EditorState(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// AddEditorBlock 在文档末尾追加一个新模块。
func (a *API) AddEditorBlock(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}

	var payload struct {
		Type string `json:"type"`
	}
	if !bindJSON(c, &payload, "模块数据格式不正确") {
		return
	}
	if !block.Known(payload.Type) {
		respondError(c, http.StatusBadRequest, "未知的模块类型")
		return
	}

	added := ctrl.AddBlock(payload.Type)
	c.JSON(http.StatusOK, gin.H{"block": added, "state": ctrl.Snapshot()})
}

// RemoveEditorBlock 删除指定模块。
func (a *API) RemoveEditorBlock(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}

	ctrl.RemoveBlock(c.Param("blockId"))
	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// PatchEditorBlock 浅合并模块属性。
func (a *API) PatchEditorBlock(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}

	var payload struct {
		Props block.PropMap `json:"props"`
	}
	if !bindJSON(c, &payload, "模块数据格式不正确") {
		return
	}

	ctrl.PatchProps(c.Param("blockId"), payload.Props)
	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// MoveEditorBlock 把模块从 from 移到 to。
func (a *API) MoveEditorBlock(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}

	var payload struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if !bindJSON(c, &payload, "移动参数格式不正确") {
		return
	}

	ctrl.MoveBlock(payload.From, payload.To)
	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// EditorDrag 驱动拖拽排序：start 记录起点，over 实时换位，end 收尾。
func (a *API) EditorDrag(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}

	var payload struct {
		Action string `json:"action"`
		Index  int    `json:"index"`
	}
	if !bindJSON(c, &payload, "拖拽参数格式不正确") {
		return
	}

	switch payload.Action {
	case "start":
		ctrl.StartDrag(payload.Index)
	case "over":
		ctrl.DragOver(payload.Index)
	case "end":
		ctrl.EndDrag()
	default:
		respondError(c, http.StatusBadRequest, "未知的拖拽动作")
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// SelectEditorBlock 切换模块选中状态（再次点击取消选中）。
func (a *API) SelectEditorBlock(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}

	var payload struct {
		BlockID string `json:"blockId"`
	}
	if !bindJSON(c, &payload, "选中参数格式不正确") {
		return
	}

	ctrl.ToggleSelected(payload.BlockID)
	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// UpdateEditorMeta 更新会话内的页面元数据草稿（保存时一并提交）。
func (a *API) UpdateEditorMeta(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}

	var draft editor.MetaDraft
	if !bindJSON(c, &draft, "页面数据格式不正确") {
		return
	}

	ctrl.UpdateMeta(draft)
	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// SaveEditor 触发两阶段保存；进行中或成功提示未消退时拒绝重入。
func (a *API) SaveEditor(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}

	if err := ctrl.Save(); err != nil {
		if errors.Is(err, editor.ErrSaveInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "保存进行中，请稍候", "state": ctrl.Snapshot()})
			return
		}
		respondPageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "页面已保存", "state": ctrl.Snapshot()})
}

// EditorPreview 返回编辑会话当前文档的预览 HTML（含选中描边）。
func (a *API) EditorPreview(c *gin.Context) {
	ctrl, ok := a.editorFor(c)
	if !ok {
		return
	}

	state := ctrl.Snapshot()
	html := render.Page(state.Blocks, state.Meta.BackgroundColor, render.Options{
		Device:          block.ParseDevice(c.Query("device")),
		EditorPreview:   true,
		SelectedBlockID: state.SelectedBlockID,
	})
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// ListBlockTypes 返回模块清单，供编辑器的插入面板使用。
func (a *API) ListBlockTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"blocks": blockPalette()})
}

func blockPalette() []gin.H {
	tags := block.TypeTags()
	palette := make([]gin.H, 0, len(tags))
	for _, tag := range tags {
		desc := block.Editor(tag)
		palette = append(palette, gin.H{
			"type":      tag,
			"label":     desc.Label,
			"category":  desc.Category,
			"supported": desc.Supported,
			"fields":    desc.Fields,
			"defaults":  block.DefaultProps(tag),
		})
	}
	return palette
}

func (a *API) editorFor(c *gin.Context) (*editor.Controller, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "页面编号不正确")
		return nil, false
	}

	ctrl, ok := a.editors.Get(sessionKey(c), id)
	if !ok {
		respondError(c, http.StatusNotFound, "编辑会话不存在，请重新打开编辑器")
		return nil, false
	}
	return ctrl, true
}
