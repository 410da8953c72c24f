package service

import (
	"fmt"
	"sync"
)

// RenderCache 缓存已渲染的视图片段。写路径在每次成功写库后使
// 相关键失效：后台页面列表、该页面的编辑器视图、店面首页与
// 该页面的店面路径，下一次读取时重新计算。
type RenderCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewRenderCache 构造空缓存。
func NewRenderCache() *RenderCache {
	return &RenderCache{entries: make(map[string]string)}
}

// Get 读取缓存条目。
func (c *RenderCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	return v, ok
}

// Set 写入缓存条目。
func (c *RenderCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
}

// Invalidate 移除指定键，忽略不存在的键。
func (c *RenderCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.entries, k)
	}
}

// Len 返回缓存条目数，仅测试使用。
func (c *RenderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// 缓存键的命名约定与失效集合保持一一对应。

// CacheKeyAdminPages 后台页面列表视图。
func CacheKeyAdminPages(tenantID uint) string {
	return fmt.Sprintf("admin:pages:%d", tenantID)
}

// CacheKeyEditor 某页面的编辑器视图。
func CacheKeyEditor(pageID uint) string {
	return fmt.Sprintf("editor:page:%d", pageID)
}

// CacheKeyStoreRoot 店面首页。
func CacheKeyStoreRoot(tenantID uint) string {
	return fmt.Sprintf("store:%d:/", tenantID)
}

// CacheKeyStorePage 店面某页面路径。
func CacheKeyStorePage(tenantID uint, slug string) string {
	return fmt.Sprintf("store:%d:/%s", tenantID, slug)
}
