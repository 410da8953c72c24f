package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/storecraft/internal/block"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

// 叶子渲染器对缺失属性一律使用回退默认值，从不报错。
func init() {
	block.RegisterRenderer(block.TypeHero, renderHero)
	block.RegisterRenderer(block.TypeText, renderText)
	block.RegisterRenderer(block.TypeRichText, renderRichText)
	block.RegisterRenderer(block.TypeHeading, renderHeading)
	block.RegisterRenderer(block.TypeQuote, renderQuote)
	block.RegisterRenderer(block.TypeImage, renderImage)
	block.RegisterRenderer(block.TypeImageFull, renderImageFull)
	block.RegisterRenderer(block.TypeGallery, renderGallery)
	block.RegisterRenderer(block.TypeBanner, renderBanner)
	block.RegisterRenderer(block.TypeMarquee, renderMarquee)
	block.RegisterRenderer(block.TypeParallax, renderParallax)
	block.RegisterRenderer(block.TypeCarousel3D, renderCarousel3D)
	block.RegisterRenderer(block.TypeProducts, renderProducts)
	block.RegisterRenderer(block.TypeProductDetail, renderProductDetail)
	block.RegisterRenderer(block.TypeTestimonials, renderCardList("testimonials", "顧客評價"))
	block.RegisterRenderer(block.TypeFeatures, renderCardList("features", "特色"))
	block.RegisterRenderer(block.TypeColumns, renderColumns)
	block.RegisterRenderer(block.TypeButton, renderButton)
	block.RegisterRenderer(block.TypeDivider, renderDivider)
	block.RegisterRenderer(block.TypeSpacer, renderSpacer)
	block.RegisterRenderer(block.TypeVideo, renderVideo)
	block.RegisterRenderer(block.TypeFAQ, renderFAQ)
	block.RegisterRenderer(block.TypeCountdown, renderCountdown)
	block.RegisterRenderer(block.TypeContactForm, renderContactForm)
	block.RegisterRenderer(block.TypeMap, renderMap)
	block.RegisterRenderer(block.TypeLogoWall, renderLogoWall)
	block.RegisterRenderer(block.TypePricing, renderCardList("pricing", "方案價格"))
	block.RegisterRenderer(block.TypeNewsletter, renderNewsletter)
	block.RegisterRenderer(block.TypeSocialLinks, renderSocialLinks)
	block.RegisterRenderer(block.TypeNavigationCards, renderCardList("navigation-cards", ""))
}

func renderHero(props block.PropMap, dev block.Device) template.HTML {
	title := block.String(props, "title", "標題")
	subtitle := block.String(props, "subtitle", "")
	imageURL := block.String(props, "imageURL", "")
	height := block.ResponsiveInt(props, "height", dev, 560)
	align := block.ResponsiveString(props, "align", dev, "center")
	overlay := block.Int(props, "overlayOpacity", 40)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="hero hero-%s" style="height:%dpx`, esc(align), height)
	if imageURL != "" {
		fmt.Fprintf(&sb, `;background-image:url('%s')`, esc(imageURL))
	}
	sb.WriteString(`">`)
	fmt.Fprintf(&sb, `<div class="hero-overlay" style="opacity:%s"></div>`, opacityValue(overlay))
	fmt.Fprintf(&sb, `<h1>%s</h1>`, esc(title))
	if subtitle != "" {
		fmt.Fprintf(&sb, `<p class="hero-subtitle">%s</p>`, esc(subtitle))
	}
	if text := block.String(props, "buttonText", ""); text != "" {
		fmt.Fprintf(&sb, `<a class="hero-button" href="%s">%s</a>`,
			esc(block.String(props, "buttonLink", "#")), esc(text))
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

// opacityValue 把百分比转换为 CSS opacity，越界取值收敛到 [0,100]。
func opacityValue(percent int) string {
	if percent <= 0 {
		return "0"
	}
	if percent >= 100 {
		return "1"
	}
	return fmt.Sprintf("0.%02d", percent)
}

func renderText(props block.PropMap, dev block.Device) template.HTML {
	content := block.String(props, "content", "")
	fontSize := block.ResponsiveInt(props, "fontSize", dev, 16)
	align := block.ResponsiveString(props, "textAlign", dev, "left")

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="text" style="font-size:%dpx;text-align:%s">`, fontSize, esc(align))
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(&sb, "<p>%s</p>", esc(line))
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

func renderRichText(props block.PropMap, dev block.Device) template.HTML {
	source := block.String(props, "markdown", "")

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		// 渲染失败退回纯文本展示，不让单个模块拖垮整页
		return template.HTML(fmt.Sprintf(`<div class="rich-text"><p>%s</p></div>`, esc(source)))
	}

	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(`<div class="rich-text">` + string(safe) + `</div>`)
}

func renderHeading(props block.PropMap, dev block.Device) template.HTML {
	text := block.String(props, "text", "標題")
	level := block.Int(props, "level", 2)
	if level < 1 || level > 6 {
		level = 2
	}
	fontSize := block.ResponsiveInt(props, "fontSize", dev, 32)
	return template.HTML(fmt.Sprintf(`<h%d style="font-size:%dpx">%s</h%d>`, level, fontSize, esc(text), level))
}

func renderQuote(props block.PropMap, dev block.Device) template.HTML {
	text := block.String(props, "text", "")
	author := block.String(props, "author", "")

	var sb strings.Builder
	fmt.Fprintf(&sb, `<blockquote class="quote"><p>%s</p>`, esc(text))
	if author != "" {
		fmt.Fprintf(&sb, `<cite>%s</cite>`, esc(author))
	}
	sb.WriteString("</blockquote>")
	return template.HTML(sb.String())
}

func renderImage(props block.PropMap, dev block.Device) template.HTML {
	imageURL := block.String(props, "imageURL", "")
	if imageURL == "" {
		return `<div class="image image-placeholder"></div>`
	}
	fit := block.ResponsiveString(props, "objectFit", dev, "cover")
	ratio := block.ResponsiveString(props, "aspectRatio", dev, "auto")
	return template.HTML(fmt.Sprintf(
		`<figure class="image"><img src="%s" alt="%s" style="object-fit:%s;aspect-ratio:%s"/></figure>`,
		esc(imageURL), esc(block.String(props, "alt", "")), esc(fit), esc(ratio)))
}

func renderImageFull(props block.PropMap, dev block.Device) template.HTML {
	imageURL := block.String(props, "imageURL", "")
	if imageURL == "" {
		return `<div class="image-full image-placeholder"></div>`
	}
	return template.HTML(fmt.Sprintf(`<img class="image-full" src="%s" alt="%s"/>`,
		esc(imageURL), esc(block.String(props, "alt", ""))))
}

// imageList 宽容地读取 images 属性：元素可以是字符串或 {url, alt} 对象。
func imageList(props block.PropMap) []struct{ URL, Alt string } {
	raw, _ := props["images"].([]any)
	out := make([]struct{ URL, Alt string }, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			if v != "" {
				out = append(out, struct{ URL, Alt string }{URL: v})
			}
		case map[string]any:
			entry := struct{ URL, Alt string }{
				URL: block.String(block.PropMap(v), "url", ""),
				Alt: block.String(block.PropMap(v), "alt", ""),
			}
			if entry.URL != "" {
				out = append(out, entry)
			}
		}
	}
	return out
}

func renderGallery(props block.PropMap, dev block.Device) template.HTML {
	columns := block.ResponsiveInt(props, "columns", dev, 3)
	layout := block.ResponsiveString(props, "layout", dev, "grid")
	gap := block.Int(props, "gap", 12)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="gallery gallery-%s" style="grid-template-columns:repeat(%d,1fr);gap:%dpx">`,
		esc(layout), columns, gap)
	for _, img := range imageList(props) {
		fmt.Fprintf(&sb, `<img src="%s" alt="%s"/>`, esc(img.URL), esc(img.Alt))
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

func renderBanner(props block.PropMap, dev block.Device) template.HTML {
	text := block.String(props, "text", "")
	link := block.String(props, "link", "")
	bg := block.String(props, "background", "#111111")
	color := block.String(props, "color", "#ffffff")

	inner := esc(text)
	if link != "" {
		inner = fmt.Sprintf(`<a href="%s">%s</a>`, esc(link), inner)
	}
	return template.HTML(fmt.Sprintf(`<div class="banner" style="background:%s;color:%s">%s</div>`,
		esc(bg), esc(color), inner))
}

func renderMarquee(props block.PropMap, dev block.Device) template.HTML {
	text := block.String(props, "text", "")
	speed := block.Int(props, "speed", 30)
	repeat := block.Int(props, "repeat", 4)
	if repeat < 1 {
		repeat = 1
	}
	fontSize := block.ResponsiveInt(props, "fontSize", dev, 20)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="marquee" data-speed="%d" style="font-size:%dpx"><div class="marquee-track">`, speed, fontSize)
	for i := 0; i < repeat; i++ {
		fmt.Fprintf(&sb, `<span>%s</span>`, esc(text))
	}
	sb.WriteString("</div></div>")
	return template.HTML(sb.String())
}

func renderParallax(props block.PropMap, dev block.Device) template.HTML {
	height := block.ResponsiveInt(props, "height", dev, 480)
	return template.HTML(fmt.Sprintf(
		`<div class="parallax" data-speed="%d" style="height:%dpx;background-image:url('%s')"><h2>%s</h2></div>`,
		block.Int(props, "speed", 50), height,
		esc(block.String(props, "imageURL", "")),
		esc(block.String(props, "title", ""))))
}

func renderCarousel3D(props block.PropMap, dev block.Device) template.HTML {
	autoplay := block.Bool(props, "autoplay", true)
	interval := block.Int(props, "interval", 4000)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="carousel-3d" data-autoplay="%t" data-interval="%d">`, autoplay, interval)
	for _, img := range imageList(props) {
		fmt.Fprintf(&sb, `<div class="carousel-slide"><img src="%s" alt="%s"/></div>`, esc(img.URL), esc(img.Alt))
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

// renderProducts 输出商品容器与查询参数，商品数据由店面端在请求时注入。
func renderProducts(props block.PropMap, dev block.Device) template.HTML {
	title := block.String(props, "title", "")
	columns := block.ResponsiveInt(props, "columns", dev, 4)
	layout := block.ResponsiveString(props, "layout", dev, "grid")

	var sb strings.Builder
	sb.WriteString(`<div class="products">`)
	if title != "" {
		fmt.Fprintf(&sb, `<h2>%s</h2>`, esc(title))
	}
	fmt.Fprintf(&sb, `<div class="products-%s" data-limit="%d" data-show-price="%t" style="grid-template-columns:repeat(%d,1fr)"></div>`,
		esc(layout), block.Int(props, "limit", 8), block.Bool(props, "showPrice", true), columns)
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

func renderProductDetail(props block.PropMap, dev block.Device) template.HTML {
	return template.HTML(fmt.Sprintf(`<div class="product-detail" data-product-id="%d" data-show-description="%t"></div>`,
		block.Int(props, "productID", 0), block.Bool(props, "showDescription", true)))
}

// renderCardList 覆盖一类共享版型的模块：标题加响应式多栏卡片。
func renderCardList(class, defaultTitle string) block.RenderFunc {
	return func(props block.PropMap, dev block.Device) template.HTML {
		title := block.String(props, "title", defaultTitle)
		columns := block.ResponsiveInt(props, "columns", dev, 3)
		items, _ := props["items"].([]any)

		var sb strings.Builder
		fmt.Fprintf(&sb, `<div class="%s">`, class)
		if title != "" {
			fmt.Fprintf(&sb, `<h2>%s</h2>`, esc(title))
		}
		fmt.Fprintf(&sb, `<div class="card-grid" style="grid-template-columns:repeat(%d,1fr)">`, columns)
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			props := block.PropMap(m)
			fmt.Fprintf(&sb, `<div class="card"><h3>%s</h3><p>%s</p></div>`,
				esc(block.String(props, "title", "")),
				esc(block.String(props, "text", "")))
		}
		sb.WriteString("</div></div>")
		return template.HTML(sb.String())
	}
}

func renderColumns(props block.PropMap, dev block.Device) template.HTML {
	columns := block.ResponsiveInt(props, "columns", dev, 2)
	gap := block.Int(props, "gap", 24)
	items, _ := props["items"].([]any)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="columns" style="grid-template-columns:repeat(%d,1fr);gap:%dpx">`, columns, gap)
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			fmt.Fprintf(&sb, `<div class="column">%s</div>`, esc(block.String(block.PropMap(m), "text", "")))
		}
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

func renderButton(props block.PropMap, dev block.Device) template.HTML {
	align := block.ResponsiveString(props, "align", dev, "center")
	return template.HTML(fmt.Sprintf(
		`<div class="button-wrap" style="text-align:%s"><a class="button button-%s" href="%s">%s</a></div>`,
		esc(align),
		esc(block.String(props, "style", "primary")),
		esc(block.String(props, "link", "#")),
		esc(block.String(props, "text", "了解更多"))))
}

func renderDivider(props block.PropMap, dev block.Device) template.HTML {
	return template.HTML(fmt.Sprintf(`<hr class="divider" style="border-style:%s;border-color:%s"/>`,
		esc(block.String(props, "style", "solid")),
		esc(block.String(props, "color", "#e5e5e5"))))
}

func renderSpacer(props block.PropMap, dev block.Device) template.HTML {
	height := block.Int(props, "heightDesktop", 48)
	if dev == block.DeviceMobile {
		height = block.Int(props, "heightMobile", 24)
	}
	return template.HTML(fmt.Sprintf(`<div class="spacer" style="height:%dpx"></div>`, height))
}

func renderVideo(props block.PropMap, dev block.Device) template.HTML {
	videoURL := block.String(props, "videoURL", "")
	if videoURL == "" {
		return `<div class="video video-placeholder"></div>`
	}
	return template.HTML(fmt.Sprintf(`<video class="video" src="%s" controls%s%s></video>`,
		esc(videoURL),
		attrIf(block.Bool(props, "autoplay", false), " autoplay muted"),
		attrIf(block.Bool(props, "loop", false), " loop")))
}

func attrIf(cond bool, attr string) string {
	if cond {
		return attr
	}
	return ""
}

func renderFAQ(props block.PropMap, dev block.Device) template.HTML {
	items, _ := props["items"].([]any)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="faq"><h2>%s</h2>`, esc(block.String(props, "title", "常見問題")))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := block.PropMap(m)
		fmt.Fprintf(&sb, `<details><summary>%s</summary><p>%s</p></details>`,
			esc(block.String(p, "question", "")),
			esc(block.String(p, "answer", "")))
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

func renderCountdown(props block.PropMap, dev block.Device) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<div class="countdown" data-deadline="%s" data-expired-text="%s"><h2>%s</h2></div>`,
		esc(block.String(props, "deadline", "")),
		esc(block.String(props, "expiredText", "活動已結束")),
		esc(block.String(props, "title", ""))))
}

func renderContactForm(props block.PropMap, dev block.Device) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<form class="contact-form"><h2>%s</h2><input name="email" type="email"/><textarea name="message"></textarea><button type="submit">%s</button></form>`,
		esc(block.String(props, "title", "聯絡我們")),
		esc(block.String(props, "buttonText", "送出"))))
}

func renderMap(props block.PropMap, dev block.Device) template.HTML {
	height := block.ResponsiveInt(props, "height", dev, 400)
	return template.HTML(fmt.Sprintf(`<div class="map" data-address="%s" data-zoom="%d" style="height:%dpx"></div>`,
		esc(block.String(props, "address", "")), block.Int(props, "zoom", 15), height))
}

func renderLogoWall(props block.PropMap, dev block.Device) template.HTML {
	columns := block.ResponsiveInt(props, "columns", dev, 5)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="logo-wall%s" style="grid-template-columns:repeat(%d,1fr)">`,
		attrIf(block.Bool(props, "grayscale", true), " logo-wall-grayscale"), columns)
	for _, img := range imageList(props) {
		fmt.Fprintf(&sb, `<img src="%s" alt="%s"/>`, esc(img.URL), esc(img.Alt))
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

func renderNewsletter(props block.PropMap, dev block.Device) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<form class="newsletter"><h2>%s</h2><input name="email" type="email" placeholder="%s"/><button type="submit">%s</button></form>`,
		esc(block.String(props, "title", "訂閱電子報")),
		esc(block.String(props, "placeholder", "輸入 Email")),
		esc(block.String(props, "buttonText", "訂閱"))))
}

func renderSocialLinks(props block.PropMap, dev block.Device) template.HTML {
	align := block.ResponsiveString(props, "align", dev, "center")
	links, _ := props["links"].([]any)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="social-links" style="text-align:%s">`, esc(align))
	for _, item := range links {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := block.PropMap(m)
		fmt.Fprintf(&sb, `<a href="%s">%s</a>`,
			esc(block.String(p, "url", "#")),
			esc(block.String(p, "platform", "")))
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}
