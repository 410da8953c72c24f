package block

// 每个模块类型的属性形态由这里的默认属性工厂与编辑器描述约定，
// 不做服务端 schema 校验；渲染端对缺失属性一律采用宽容回退。

// 模块类型标签的封闭集合。
const (
	TypeHero            = "hero"
	TypeText            = "text"
	TypeRichText        = "rich-text"
	TypeHeading         = "heading"
	TypeQuote           = "quote"
	TypeImage           = "image"
	TypeImageFull       = "image-full"
	TypeGallery         = "gallery"
	TypeBanner          = "banner"
	TypeMarquee         = "marquee"
	TypeParallax        = "parallax"
	TypeCarousel3D      = "carousel-3d"
	TypeProducts        = "products"
	TypeProductDetail   = "product-detail"
	TypeTestimonials    = "testimonials"
	TypeFeatures        = "features"
	TypeColumns         = "columns"
	TypeButton          = "button"
	TypeDivider         = "divider"
	TypeSpacer          = "spacer"
	TypeVideo           = "video"
	TypeFAQ             = "faq"
	TypeCountdown       = "countdown"
	TypeContactForm     = "contact-form"
	TypeMap             = "map"
	TypeLogoWall        = "logo-wall"
	TypePricing         = "pricing"
	TypeNewsletter      = "newsletter"
	TypeSocialLinks     = "social-links"
	TypeNavigationCards = "navigation-cards"
)

// common 合并所有模块共享的默认属性：响应式垂直间距与滚动动画声明。
func common(extra PropMap) PropMap {
	props := PropMap{
		"paddingYDesktop":   64,
		"paddingYMobile":    32,
		"animation":         "",
		"animationDuration": 600,
		"animationDelay":    0,
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func paddingFields() []EditorField {
	return []EditorField{
		{Key: "paddingY", Label: "垂直間距", Input: "number", Responsive: true},
		{Key: "animation", Label: "進場動畫", Input: "select", Options: []string{"", "fade-up", "fade-in", "slide-left", "slide-right", "zoom-in"}},
		{Key: "animationDuration", Label: "動畫時長 (ms)", Input: "number"},
		{Key: "animationDelay", Label: "動畫延遲 (ms)", Input: "number"},
	}
}

func editor(label, category string, fields ...EditorField) EditorDescriptor {
	return EditorDescriptor{
		Label:     label,
		Category:  category,
		Supported: true,
		Fields:    append(fields, paddingFields()...),
	}
}

var typeOrder = []string{
	TypeHero, TypeText, TypeRichText, TypeHeading, TypeQuote,
	TypeImage, TypeImageFull, TypeGallery, TypeBanner, TypeMarquee,
	TypeParallax, TypeCarousel3D, TypeProducts, TypeProductDetail,
	TypeTestimonials, TypeFeatures, TypeColumns, TypeButton,
	TypeDivider, TypeSpacer, TypeVideo, TypeFAQ, TypeCountdown,
	TypeContactForm, TypeMap, TypeLogoWall, TypePricing,
	TypeNewsletter, TypeSocialLinks, TypeNavigationCards,
}

var registry = map[string]Definition{
	TypeHero: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"title":          "標題",
				"subtitle":       "副標題",
				"imageURL":       "",
				"buttonText":     "",
				"buttonLink":     "",
				"overlayOpacity": 40,
				"heightDesktop":  560,
				"heightMobile":   420,
				"alignDesktop":   "center",
				"alignMobile":    "center",
			})
		},
		Editor: editor("主視覺", "banner",
			EditorField{Key: "title", Label: "標題", Input: "text"},
			EditorField{Key: "subtitle", Label: "副標題", Input: "text"},
			EditorField{Key: "imageURL", Label: "背景圖片", Input: "image"},
			EditorField{Key: "buttonText", Label: "按鈕文字", Input: "text"},
			EditorField{Key: "buttonLink", Label: "按鈕連結", Input: "text"},
			EditorField{Key: "height", Label: "高度", Input: "number", Responsive: true},
			EditorField{Key: "align", Label: "對齊", Input: "select", Options: []string{"left", "center", "right"}, Responsive: true},
		),
	},
	TypeText: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"content":          "請輸入內容",
				"fontSizeDesktop":  16,
				"fontSizeMobile":   14,
				"textAlignDesktop": "left",
				"textAlignMobile":  "left",
			})
		},
		Editor: editor("文字", "content",
			EditorField{Key: "content", Label: "內容", Input: "textarea"},
			EditorField{Key: "fontSize", Label: "字級", Input: "number", Responsive: true},
			EditorField{Key: "textAlign", Label: "對齊", Input: "select", Options: []string{"left", "center", "right"}, Responsive: true},
		),
	},
	TypeRichText: {
		DefaultProps: func() PropMap {
			return common(PropMap{"markdown": "請輸入內容"})
		},
		Editor: editor("Markdown 文字", "content",
			EditorField{Key: "markdown", Label: "Markdown 內容", Input: "textarea"},
		),
	},
	TypeHeading: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"text":            "標題",
				"level":           2,
				"fontSizeDesktop": 32,
				"fontSizeMobile":  24,
			})
		},
		Editor: editor("標題", "content",
			EditorField{Key: "text", Label: "標題文字", Input: "text"},
			EditorField{Key: "level", Label: "層級", Input: "select", Options: []string{"1", "2", "3", "4"}},
			EditorField{Key: "fontSize", Label: "字級", Input: "number", Responsive: true},
		),
	},
	TypeQuote: {
		DefaultProps: func() PropMap {
			return common(PropMap{"text": "引言內容", "author": ""})
		},
		Editor: editor("引言", "content",
			EditorField{Key: "text", Label: "引言", Input: "textarea"},
			EditorField{Key: "author", Label: "作者", Input: "text"},
		),
	},
	TypeImage: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"imageURL":           "",
				"alt":                "",
				"objectFitDesktop":   "cover",
				"objectFitMobile":    "cover",
				"aspectRatioDesktop": "16/9",
				"aspectRatioMobile":  "4/3",
			})
		},
		Editor: editor("圖片", "media",
			EditorField{Key: "imageURL", Label: "圖片", Input: "image"},
			EditorField{Key: "alt", Label: "替代文字", Input: "text"},
			EditorField{Key: "objectFit", Label: "填充方式", Input: "select", Options: []string{"cover", "contain", "fill"}, Responsive: true},
			EditorField{Key: "aspectRatio", Label: "長寬比", Input: "select", Options: []string{"16/9", "4/3", "1/1", "auto"}, Responsive: true},
		),
	},
	TypeImageFull: {
		DefaultProps: func() PropMap {
			return common(PropMap{"imageURL": "", "alt": ""})
		},
		Editor: editor("滿版圖片", "media",
			EditorField{Key: "imageURL", Label: "圖片", Input: "image"},
			EditorField{Key: "alt", Label: "替代文字", Input: "text"},
		),
	},
	TypeGallery: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"images":         []any{},
				"columnsDesktop": 3,
				"columnsMobile":  2,
				"layoutDesktop":  "grid",
				"layoutMobile":   "grid",
				"gap":            12,
			})
		},
		Editor: editor("圖庫", "media",
			EditorField{Key: "images", Label: "圖片列表", Input: "image"},
			EditorField{Key: "columns", Label: "欄數", Input: "number", Responsive: true},
			EditorField{Key: "layout", Label: "版型", Input: "select", Options: []string{"grid", "masonry", "list"}, Responsive: true},
		),
	},
	TypeBanner: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"text":       "公告文字",
				"link":       "",
				"background": "#111111",
				"color":      "#ffffff",
			})
		},
		Editor: editor("橫幅", "banner",
			EditorField{Key: "text", Label: "文字", Input: "text"},
			EditorField{Key: "link", Label: "連結", Input: "text"},
			EditorField{Key: "background", Label: "背景色", Input: "color"},
			EditorField{Key: "color", Label: "文字色", Input: "color"},
		),
	},
	TypeMarquee: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"text":            "跑馬燈文字",
				"speed":           30,
				"repeat":          4,
				"fontSizeDesktop": 20,
				"fontSizeMobile":  16,
			})
		},
		Editor: editor("跑馬燈", "premium",
			EditorField{Key: "text", Label: "文字", Input: "text"},
			EditorField{Key: "speed", Label: "速度", Input: "number"},
			EditorField{Key: "repeat", Label: "重複次數", Input: "number"},
			EditorField{Key: "fontSize", Label: "字級", Input: "number", Responsive: true},
		),
	},
	TypeParallax: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"imageURL":      "",
				"title":         "標題",
				"heightDesktop": 480,
				"heightMobile":  320,
				"speed":         50,
			})
		},
		Editor: editor("視差滾動", "premium",
			EditorField{Key: "imageURL", Label: "背景圖片", Input: "image"},
			EditorField{Key: "title", Label: "標題", Input: "text"},
			EditorField{Key: "height", Label: "高度", Input: "number", Responsive: true},
			EditorField{Key: "speed", Label: "視差強度", Input: "number"},
		),
	},
	TypeCarousel3D: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"images":   []any{},
				"autoplay": true,
				"interval": 4000,
			})
		},
		Editor: editor("3D 輪播", "premium",
			EditorField{Key: "images", Label: "圖片列表", Input: "image"},
			EditorField{Key: "autoplay", Label: "自動播放", Input: "toggle"},
			EditorField{Key: "interval", Label: "輪播間隔 (ms)", Input: "number"},
		),
	},
	TypeProducts: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"title":          "精選商品",
				"limit":          8,
				"columnsDesktop": 4,
				"columnsMobile":  2,
				"layoutDesktop":  "grid",
				"layoutMobile":   "grid",
				"showPrice":      true,
			})
		},
		Editor: editor("商品列表", "commerce",
			EditorField{Key: "title", Label: "標題", Input: "text"},
			EditorField{Key: "limit", Label: "顯示數量", Input: "number"},
			EditorField{Key: "columns", Label: "欄數", Input: "number", Responsive: true},
			EditorField{Key: "layout", Label: "版型", Input: "select", Options: []string{"grid", "list", "carousel"}, Responsive: true},
			EditorField{Key: "showPrice", Label: "顯示價格", Input: "toggle"},
		),
	},
	TypeProductDetail: {
		DefaultProps: func() PropMap {
			return common(PropMap{"productID": 0, "showDescription": true})
		},
		Editor: editor("商品詳情", "commerce",
			EditorField{Key: "productID", Label: "商品", Input: "number"},
			EditorField{Key: "showDescription", Label: "顯示描述", Input: "toggle"},
		),
	},
	TypeTestimonials: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"title":          "顧客評價",
				"items":          []any{},
				"columnsDesktop": 3,
				"columnsMobile":  1,
			})
		},
		Editor: editor("顧客評價", "content",
			EditorField{Key: "title", Label: "標題", Input: "text"},
			EditorField{Key: "columns", Label: "欄數", Input: "number", Responsive: true},
		),
	},
	TypeFeatures: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"title":          "特色",
				"items":          []any{},
				"columnsDesktop": 3,
				"columnsMobile":  1,
			})
		},
		Editor: editor("特色區塊", "content",
			EditorField{Key: "title", Label: "標題", Input: "text"},
			EditorField{Key: "columns", Label: "欄數", Input: "number", Responsive: true},
		),
	},
	TypeColumns: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"columnsDesktop": 2,
				"columnsMobile":  1,
				"items":          []any{},
				"gap":            24,
			})
		},
		Editor: editor("多欄版面", "layout",
			EditorField{Key: "columns", Label: "欄數", Input: "number", Responsive: true},
		),
	},
	TypeButton: {
		DefaultProps: func() PropMap {
			return common(PropMap{
				"text":         "了解更多",
				"link":         "",
				"style":        "primary",
				"alignDesktop": "center",
				"alignMobile":  "center",
			})
		},
		Editor: editor("按鈕", "content",
			EditorField{Key: "text", Label: "文字", Input: "text"},
			EditorField{Key: "link", Label: "連結", Input: "text"},
			EditorField{Key: "style", Label: "樣式", Input: "select", Options: []string{"primary", "outline", "ghost"}},
			EditorField{Key: "align", Label: "對齊", Input: "select", Options: []string{"left", "center", "right"}, Responsive: true},
		),
	},
	TypeDivider: {
		DefaultProps: func() PropMap {
			return common(PropMap{"style": "solid", "color": "#e5e5e5"})
		},
		Editor: editor("分隔線", "layout",
			EditorField{Key: "style", Label: "樣式", Input: "select", Options: []string{"solid", "dashed", "dotted"}},
			EditorField{Key: "color", Label: "顏色", Input: "color"},
		),
	},
	TypeSpacer: {
		DefaultProps: func() PropMap {
			return common(PropMap{"heightDesktop": 48, "heightMobile": 24})
		},
		Editor: editor("留白", "layout",
			EditorField{Key: "height", Label: "高度", Input: "number", Responsive: true},
		),
	},
	TypeVideo: {
		DefaultProps: func() PropMap {
			return common(PropMap{"videoURL": "", "autoplay": false, "loop": false})
		},
		Editor: editor("影片", "media",
			EditorField{Key: "videoURL", Label: "影片連結", Input: "text"},
			EditorField{Key: "autoplay", Label: "自動播放", Input: "toggle"},
			EditorField{Key: "loop", Label: "循環播放", Input: "toggle"},
		),
	},
	TypeFAQ: {
		DefaultProps: func() PropMap {
			return common(PropMap{"title": "常見問題", "items": []any{}})
		},
		Editor: editor("常見問題", "content",
			EditorField{Key: "title", Label: "標題", Input: "text"},
		),
	},
	TypeCountdown: {
		DefaultProps: func() PropMap {
			return common(PropMap{"title": "限時優惠", "deadline": "", "expiredText": "活動已結束"})
		},
		Editor: editor("倒數計時", "commerce",
			EditorField{Key: "title", Label: "標題", Input: "text"},
			EditorField{Key: "deadline", Label: "截止時間", Input: "text"},
			EditorField{Key: "expiredText", Label: "結束文案", Input: "text"},
		),
	},
	TypeContactForm: {
		DefaultProps: func() PropMap {
			return common(PropMap{"title": "聯絡我們", "buttonText": "送出"})
		},
		Editor: editor("聯絡表單", "content",
			EditorField{Key: "title", Label: "標題", Input: "text"},
			EditorField{Key: "buttonText", Label: "按鈕文字", Input: "text"},
		),
	},
	TypeMap: {
		DefaultProps: func() PropMap {
			return common(PropMap{"address": "", "zoom": 15, "heightDesktop": 400, "heightMobile": 280})
		},
		Editor: editor("地圖", "content",
			EditorField{Key: "address", Label: "地址", Input: "text"},
			EditorField{Key: "zoom", Label: "縮放等級", Input: "number"},
			EditorField{Key: "height", Label: "高度", Input: "number", Responsive: true},
		),
	},
	TypeLogoWall: {
		DefaultProps: func() PropMap {
			return common(PropMap{"images": []any{}, "columnsDesktop": 5, "columnsMobile": 3, "grayscale": true})
		},
		Editor: editor("品牌牆", "media",
			EditorField{Key: "images", Label: "Logo 列表", Input: "image"},
			EditorField{Key: "columns", Label: "欄數", Input: "number", Responsive: true},
			EditorField{Key: "grayscale", Label: "灰階顯示", Input: "toggle"},
		),
	},
	TypePricing: {
		DefaultProps: func() PropMap {
			return common(PropMap{"title": "方案價格", "plans": []any{}, "columnsDesktop": 3, "columnsMobile": 1})
		},
		Editor: editor("價格表", "commerce",
			EditorField{Key: "title", Label: "標題", Input: "text"},
			EditorField{Key: "columns", Label: "欄數", Input: "number", Responsive: true},
		),
	},
	TypeNewsletter: {
		DefaultProps: func() PropMap {
			return common(PropMap{"title": "訂閱電子報", "placeholder": "輸入 Email", "buttonText": "訂閱"})
		},
		Editor: editor("電子報訂閱", "content",
			EditorField{Key: "title", Label: "標題", Input: "text"},
			EditorField{Key: "placeholder", Label: "輸入框提示", Input: "text"},
			EditorField{Key: "buttonText", Label: "按鈕文字", Input: "text"},
		),
	},
	TypeSocialLinks: {
		DefaultProps: func() PropMap {
			return common(PropMap{"links": []any{}, "alignDesktop": "center", "alignMobile": "center"})
		},
		Editor: editor("社群連結", "content",
			EditorField{Key: "align", Label: "對齊", Input: "select", Options: []string{"left", "center", "right"}, Responsive: true},
		),
	},
	TypeNavigationCards: {
		DefaultProps: func() PropMap {
			return common(PropMap{"items": []any{}, "columnsDesktop": 3, "columnsMobile": 1})
		},
		Editor: editor("導覽卡片", "layout",
			EditorField{Key: "columns", Label: "欄數", Input: "number", Responsive: true},
		),
	},
}
