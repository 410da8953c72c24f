package editor

import (
	"fmt"
	"sync"
)

// Manager 维护每个后台会话、每个页面各自独立的编辑器控制器。
// 控制器只存在于内存中，未保存的改动随会话结束丢弃。
type Manager struct {
	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewManager 构造空的控制器管理器。
func NewManager() *Manager {
	return &Manager{controllers: make(map[string]*Controller)}
}

func key(sessionID string, pageID uint) string {
	return fmt.Sprintf("%s:%d", sessionID, pageID)
}

// Get 返回指定会话与页面的控制器。
func (m *Manager) Get(sessionID string, pageID uint) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.controllers[key(sessionID, pageID)]
	return c, ok
}

// Put 登记控制器，覆盖同键的旧实例（重新打开编辑器即重建）。
func (m *Manager) Put(sessionID string, pageID uint, c *Controller) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.controllers[key(sessionID, pageID)] = c
}

// Drop 移除控制器（关闭编辑器或删除页面时调用）。
func (m *Manager) Drop(sessionID string, pageID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.controllers, key(sessionID, pageID))
}
