package block

import (
	"html/template"
	"sync"
)

// RenderFunc 将模块属性在给定设备上下文下投影为 HTML 片段。
type RenderFunc func(props PropMap, dev Device) template.HTML

// EditorField 描述编辑器中某个属性的输入控件，供后台页面构建器渲染表单。
type EditorField struct {
	Key        string   `json:"key"`
	Label      string   `json:"label"`
	Input      string   `json:"input"` // text, textarea, number, color, select, toggle, image
	Options    []string `json:"options,omitempty"`
	Responsive bool     `json:"responsive,omitempty"`
}

// EditorDescriptor 描述某模块类型在编辑器中的表单结构。
type EditorDescriptor struct {
	Label     string        `json:"label"`
	Category  string        `json:"category"`
	Supported bool          `json:"supported"`
	Fields    []EditorField `json:"fields,omitempty"`
}

// Definition 将模块类型映射到默认属性工厂与编辑器描述。
// 渲染函数由渲染包在 init 时通过 RegisterRenderer 挂载，避免双向依赖。
type Definition struct {
	DefaultProps func() PropMap
	Editor       EditorDescriptor
}

// unsupportedEditor 是未实现编辑器的占位描述：部分实现的模块类型
// 不应导致编辑器崩溃，而是降级为提示。
var unsupportedEditor = EditorDescriptor{
	Label:     "未支援的模組",
	Category:  "other",
	Supported: false,
}

// DefaultProps 返回指定类型的全新默认属性；未知类型返回空 map，从不报错。
func DefaultProps(blockType string) PropMap {
	if def, ok := registry[blockType]; ok && def.DefaultProps != nil {
		return def.DefaultProps()
	}
	return PropMap{}
}

// Editor 返回指定类型的编辑器描述；未知类型返回未支援占位。
func Editor(blockType string) EditorDescriptor {
	if def, ok := registry[blockType]; ok && def.Editor.Supported {
		return def.Editor
	}
	return unsupportedEditor
}

// Known 报告类型是否属于注册表的封闭集合。
func Known(blockType string) bool {
	_, ok := registry[blockType]
	return ok
}

// Types 返回注册表内全部类型标签，供后台"新增模块"面板展示。
func Types() []EditorDescriptor {
	result := make([]EditorDescriptor, 0, len(registry))
	for _, t := range typeOrder {
		result = append(result, registry[t].Editor)
	}
	return result
}

// TypeTags 返回注册表内全部类型标签（稳定顺序）。
func TypeTags() []string {
	return append([]string(nil), typeOrder...)
}

var (
	rendererMu sync.RWMutex
	renderers  = make(map[string]RenderFunc)
)

// RegisterRenderer 供渲染包在 init 中为模块类型挂载渲染函数。
func RegisterRenderer(blockType string, fn RenderFunc) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	renderers[blockType] = fn
}

// Renderer 返回模块类型对应的渲染函数；未注册时返回 nil（调用方静默跳过）。
func Renderer(blockType string) RenderFunc {
	rendererMu.RLock()
	defer rendererMu.RUnlock()
	return renderers[blockType]
}
