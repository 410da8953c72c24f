package render

import "github.com/storecraft/internal/block"

// fullWidthTypes 是满版渲染的模块类型白名单：
// 这些类型贴边渲染，其余类型置于限宽内容列中。
var fullWidthTypes = map[string]bool{
	block.TypeHero:       true,
	block.TypeBanner:     true,
	block.TypeMarquee:    true,
	block.TypeParallax:   true,
	block.TypeImageFull:  true,
	block.TypeCarousel3D: true,
}

// FullWidth 报告模块类型是否满版渲染。
func FullWidth(blockType string) bool {
	return fullWidthTypes[blockType]
}
