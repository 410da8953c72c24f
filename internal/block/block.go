package block

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// PropMap 是模块的开放属性集合，具体形态由模块类型约定而非 schema 强制。
type PropMap map[string]any

// Block 是页面内容列表中的一个模块：带类型标签与开放属性。
// ID 在编辑器内生成，排序变化时保持稳定。
type Block struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Props PropMap `json:"props"`
}

// New 根据注册表默认属性构造一个新模块。
func New(blockType string) Block {
	return Block{
		ID:    uuid.NewString(),
		Type:  blockType,
		Props: DefaultProps(blockType),
	}
}

// Clone returns a deep-enough copy: the props map is copied one level down,
// matching the shallow-merge semantics of Patch.
func (b Block) Clone() Block {
	props := make(PropMap, len(b.Props))
	for k, v := range b.Props {
		props[k] = v
	}
	return Block{ID: b.ID, Type: b.Type, Props: props}
}

// Patch 将 partial 浅合并进 props：partial 中的键覆盖，其余键保留。
func Patch(props, partial PropMap) PropMap {
	merged := make(PropMap, len(props)+len(partial))
	for k, v := range props {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}

// Reorder 将 list[from] 移动到 to 位置并保持其余元素相对顺序。
// to 超出 [0, len) 或 from 非法时原样返回。
func Reorder(list []Block, from, to int) []Block {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return list
	}
	if from == to {
		return list
	}

	result := make([]Block, 0, len(list))
	result = append(result, list[:from]...)
	result = append(result, list[from+1:]...)

	tail := append([]Block{list[from]}, result[to:]...)
	return append(result[:to], tail...)
}

// Remove 过滤掉指定 id 的模块；id 不存在时列表不变。
func Remove(list []Block, id string) []Block {
	result := make([]Block, 0, len(list))
	for _, b := range list {
		if b.ID != id {
			result = append(result, b)
		}
	}
	return result
}

// Decode 解析页面 Content 字段存储的 JSON 模块列表。
// 空内容视为空列表；缺失或重复的模块 ID 会在边界处补齐。
func Decode(content string) ([]Block, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return []Block{}, nil
	}

	var blocks []Block
	if err := json.Unmarshal([]byte(trimmed), &blocks); err != nil {
		return nil, err
	}
	return Normalize(blocks), nil
}

// Encode 将模块列表序列化为页面 Content 字段的 JSON。
func Encode(blocks []Block) (string, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	data, err := json.Marshal(blocks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Normalize 保证列表内模块 ID 非空且唯一，props 非 nil。
func Normalize(blocks []Block) []Block {
	seen := make(map[string]bool, len(blocks))
	result := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.ID == "" || seen[b.ID] {
			b.ID = uuid.NewString()
		}
		seen[b.ID] = true
		if b.Props == nil {
			b.Props = PropMap{}
		}
		result = append(result, b)
	}
	return result
}
