// Package render 将页面的有序模块列表投影为 HTML。
// 相同输入总是产出相同结果；缺失属性一律宽容回退，未知类型静默跳过。
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/storecraft/internal/block"
)

// Options 控制一次渲染：设备上下文与编辑器预览态。
type Options struct {
	Device          block.Device
	EditorPreview   bool
	SelectedBlockID string
}

// contentMaxWidth 是非满版模块的内容列宽度上限。
const contentMaxWidth = 1080

// Page 渲染整页内容。背景色作用于整个文档容器。
func Page(blocks []block.Block, backgroundColor string, opts Options) template.HTML {
	var sb strings.Builder

	sb.WriteString(`<div class="page-content"`)
	if color := strings.TrimSpace(backgroundColor); color != "" {
		fmt.Fprintf(&sb, ` style="background-color:%s"`, template.HTMLEscapeString(color))
	}
	sb.WriteString(">")

	for _, b := range blocks {
		sb.WriteString(string(Block(b, opts)))
	}

	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

// Block 渲染单个模块：解析满版/限宽版型与响应式垂直间距，
// 声明了进场动画的模块附加预备态标记，最后按类型分发到叶子渲染器。
// 未注册的类型不渲染任何内容，旧文档引用已下线的类型时静默降级。
func Block(b block.Block, opts Options) template.HTML {
	fn := block.Renderer(b.Type)
	if fn == nil {
		return ""
	}

	inner := fn(b.Props, opts.Device)

	padding := verticalPadding(b.Props, opts.Device)

	classes := []string{"page-block", "block-" + b.Type}
	if FullWidth(b.Type) {
		classes = append(classes, "block-full")
	} else {
		classes = append(classes, "block-constrained")
	}

	anim := animationOf(b.Props)
	if anim.declared() {
		classes = append(classes, "anim", "anim-"+anim.name)
	}
	if opts.EditorPreview && opts.SelectedBlockID != "" && b.ID == opts.SelectedBlockID {
		classes = append(classes, "block-selected")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<section class="%s" data-block-id="%s" data-block-type="%s"`,
		strings.Join(classes, " "),
		template.HTMLEscapeString(b.ID),
		template.HTMLEscapeString(b.Type))
	if anim.declared() {
		fmt.Fprintf(&sb, ` data-anim-duration="%d" data-anim-delay="%d"`, anim.duration, anim.delay)
	}
	fmt.Fprintf(&sb, ` style="padding-top:%dpx;padding-bottom:%dpx"`, padding, padding)
	sb.WriteString(">")

	if FullWidth(b.Type) {
		sb.WriteString(string(inner))
	} else {
		fmt.Fprintf(&sb, `<div class="block-inner" style="max-width:%dpx;margin:0 auto">`, contentMaxWidth)
		sb.WriteString(string(inner))
		sb.WriteString("</div>")
	}

	sb.WriteString("</section>")
	return template.HTML(sb.String())
}

// verticalPadding 按设备取垂直间距：桌面端默认 64，移动端默认 32。
// 两端各自独立存储，单页可自由混用满版与留白模块。
func verticalPadding(props block.PropMap, dev block.Device) int {
	if dev == block.DeviceMobile {
		return block.Int(props, "paddingYMobile", 32)
	}
	return block.Int(props, "paddingYDesktop", 64)
}

// animation 描述模块的滚动进场动画声明。
// 动画在模块首次进入视口时播放一次，离开后不重播；
// 渲染端只负责标记预备态，交由前端以 IntersectionObserver 触发。
type animation struct {
	name     string
	duration int
	delay    int
}

func (a animation) declared() bool {
	return a.name != ""
}

func animationOf(props block.PropMap) animation {
	return animation{
		name:     block.String(props, "animation", ""),
		duration: block.Int(props, "animationDuration", 600),
		delay:    block.Int(props, "animationDelay", 0),
	}
}
