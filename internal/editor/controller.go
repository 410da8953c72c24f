package editor

import (
	"errors"
	"sync"
	"time"

	"github.com/storecraft/internal/block"
)

var (
	// ErrSaveInProgress 表示已有一次保存尚未结束（或成功提示仍在展示）。
	ErrSaveInProgress = errors.New("save already in progress")
)

// savedFlagTTL 是保存成功提示的展示时长，到期后自动清除。
const savedFlagTTL = 2 * time.Second

// MetaDraft 是编辑器内的页面元数据草稿，保存时整体提交。
type MetaDraft struct {
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

// Gateway 是编辑器保存时依赖的持久化接口，两阶段提交按顺序调用。
type Gateway interface {
	UpdateMeta(pageID uint, draft MetaDraft) error
	UpdateContent(pageID uint, blocks []block.Block) error
}

// State 是编辑器状态的一次快照，序列化后交给后台界面。
type State struct {
	PageID          uint          `json:"pageId"`
	Meta            MetaDraft     `json:"meta"`
	Blocks          []block.Block `json:"blocks"`
	SelectedBlockID string        `json:"selectedBlockId"`
	DragSourceIndex int           `json:"dragSourceIndex"`
	Saving          bool          `json:"saving"`
	Saved           bool          `json:"saved"`
	Error           string        `json:"error"`
}

// Controller 是页面文档在编辑器内的内存镜像：模块增删改排、
// 单选展开、拖拽索引与保存状态机都在这里维护。
type Controller struct {
	mu sync.Mutex

	pageID   uint
	gateway  Gateway
	savedTTL time.Duration

	meta       MetaDraft
	blocks     []block.Block
	selectedID string
	dragSource int

	saving  bool
	saved   bool
	saveErr string
	saveGen int
}

// NewController 基于已加载的页面文档构造编辑器控制器。
func NewController(pageID uint, meta MetaDraft, blocks []block.Block, gw Gateway) *Controller {
	return &Controller{
		pageID:     pageID,
		gateway:    gw,
		savedTTL:   savedFlagTTL,
		meta:       meta,
		blocks:     block.Normalize(blocks),
		dragSource: -1,
	}
}

// SetSavedTTL 调整保存成功提示的展示时长，仅测试使用。
func (c *Controller) SetSavedTTL(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.savedTTL = d
}

// AddBlock 追加一个带注册表默认属性的新模块；不会自动选中。
func (c *Controller) AddBlock(blockType string) block.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := block.New(blockType)
	c.blocks = append(c.blocks, b)
	return b
}

// RemoveBlock 将指定模块移出列表；确认交互属于界面层，这里不做。
func (c *Controller) RemoveBlock(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks = block.Remove(c.blocks, id)
	if c.selectedID == id {
		c.selectedID = ""
	}
}

// PatchProps 将 partial 浅合并进指定模块的属性。
// id 不存在时静默忽略（沿用既有行为，不视为错误）。
func (c *Controller) PatchProps(id string, partial block.PropMap) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, b := range c.blocks {
		if b.ID == id {
			c.blocks[i].Props = block.Patch(b.Props, partial)
			return
		}
	}
}

// MoveBlock 移动模块位置，目标越界时不生效。
func (c *Controller) MoveBlock(from, to int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks = block.Reorder(c.blocks, from, to)
}

// StartDrag 记录拖拽起点索引。
func (c *Controller) StartDrag(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.blocks) {
		return
	}
	c.dragSource = index
}

// DragOver 处理拖拽越过新的目标索引：立即提交一次移动并把
// 拖拽源索引更新为目标位置，使排序是连续生效而非拖拽结束才生效。
func (c *Controller) DragOver(target int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dragSource < 0 || target == c.dragSource {
		return
	}
	if target < 0 || target >= len(c.blocks) {
		return
	}
	c.blocks = block.Reorder(c.blocks, c.dragSource, target)
	c.dragSource = target
}

// EndDrag 结束拖拽并清除拖拽索引。
func (c *Controller) EndDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dragSource = -1
}

// ToggleSelected 维护"同一时间最多展开一个模块"的不变量：
// 点击已选中的模块则收起，点击其他模块则切换展开对象。
func (c *Controller) ToggleSelected(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selectedID == id {
		c.selectedID = ""
		return
	}
	c.selectedID = id
}

// Snapshot 返回当前状态的拷贝。
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	blocks := make([]block.Block, 0, len(c.blocks))
	for _, b := range c.blocks {
		blocks = append(blocks, b.Clone())
	}

	return State{
		PageID:          c.pageID,
		Meta:            c.meta,
		Blocks:          blocks,
		SelectedBlockID: c.selectedID,
		DragSourceIndex: c.dragSource,
		Saving:          c.saving,
		Saved:           c.saved,
		Error:           c.saveErr,
	}
}

// UpdateMeta 覆盖元数据草稿。
func (c *Controller) UpdateMeta(meta MetaDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.meta = meta
}

// Save 两阶段保存：先提交元数据，失败则中止且不触碰内容；
// 成功后整体覆盖提交模块列表。内容阶段失败时元数据不回滚，
// 这一不一致窗口是既有语义，按原样保留。
func (c *Controller) Save() error {
	c.mu.Lock()
	if c.saving || c.saved {
		c.mu.Unlock()
		return ErrSaveInProgress
	}
	c.saving = true
	c.saveErr = ""
	meta := c.meta
	blocks := make([]block.Block, 0, len(c.blocks))
	for _, b := range c.blocks {
		blocks = append(blocks, b.Clone())
	}
	pageID := c.pageID
	gw := c.gateway
	c.mu.Unlock()

	if err := gw.UpdateMeta(pageID, meta); err != nil {
		c.finishSave(err)
		return err
	}
	if err := gw.UpdateContent(pageID, blocks); err != nil {
		c.finishSave(err)
		return err
	}

	c.finishSave(nil)
	return nil
}

func (c *Controller) finishSave(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.saving = false
	if err != nil {
		c.saveErr = err.Error()
		return
	}

	c.saved = true
	c.saveGen++
	gen := c.saveGen
	time.AfterFunc(c.savedTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.saveGen == gen {
			c.saved = false
		}
	})
}
