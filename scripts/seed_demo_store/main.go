package main

import (
	"fmt"
	"log"

	"github.com/storecraft/internal/block"
	"github.com/storecraft/internal/config"
	"github.com/storecraft/internal/db"
	"github.com/storecraft/internal/service"
)

// 演示商店数据生成器
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示商店...")

	tenants := service.NewTenantService(db.DB)
	tenant, err := tenants.EnsureDefault("示範商店")
	if err != nil {
		log.Fatal("创建商店失败:", err)
	}

	if err := db.EnsureUser(tenant.ID, "admin", "admin123"); err != nil {
		log.Fatal("创建管理员失败:", err)
	}

	seedSettings(tenant.ID)
	seedPages(tenant.ID)
	seedProducts(tenant.ID)

	fmt.Println("演示商店生成完成！")
	fmt.Println("管理员: admin (密码: admin123)")
}

func seedSettings(tenantID uint) {
	settings := service.NewSiteSettingService(db.DB)
	if _, err := settings.UpdateSettings(tenantID, service.SiteSettingsInput{
		SiteName:   "示範商店",
		ThemeColor: "#1a1a2e",
		FooterText: "© 2026 示範商店",
	}); err != nil {
		log.Fatal("写入店面设置失败:", err)
	}
	fmt.Println("店面设置已写入")
}

func seedPages(tenantID uint) {
	pages := service.NewPageService(db.DB, service.NewRenderCache(), nil)

	var count int64
	db.DB.Model(&db.Page{}).Where("tenant_id = ?", tenantID).Count(&count)
	if count > 0 {
		fmt.Println("页面已存在，跳过创建")
		return
	}

	home, err := pages.Create(tenantID, service.PageInput{
		Title:      "首頁",
		Slug:       "home",
		IsHomepage: true,
		Published:  true,
	})
	if err != nil {
		log.Fatal("创建首页失败:", err)
	}

	homeBlocks := []block.Block{
		block.New(block.TypeHero),
		block.New(block.TypeText),
		block.New(block.TypeProducts),
	}
	homeBlocks[0].Props["title"] = "歡迎光臨示範商店"
	homeBlocks[0].Props["subtitle"] = "嚴選好物，即刻入手"
	homeBlocks[1].Props["content"] = "這是一間由頁面編輯器搭建的示範商店。"
	if _, err := pages.UpdateContent(home.ID, homeBlocks); err != nil {
		log.Fatal("写入首页内容失败:", err)
	}

	about, err := pages.Create(tenantID, service.PageInput{
		Title:     "關於我們",
		Slug:      "about",
		Published: true,
		ShowInNav: true,
		NavOrder:  1,
	})
	if err != nil {
		log.Fatal("创建关于页失败:", err)
	}

	aboutBlocks := []block.Block{
		block.New(block.TypeHeading),
		block.New(block.TypeRichText),
	}
	aboutBlocks[0].Props["text"] = "關於我們"
	aboutBlocks[1].Props["content"] = "我們相信**好的商品**值得好的呈現。"
	if _, err := pages.UpdateContent(about.ID, aboutBlocks); err != nil {
		log.Fatal("写入关于页内容失败:", err)
	}

	fmt.Println("页面: 首頁、關於我們")
}

func seedProducts(tenantID uint) {
	products := service.NewProductService(db.DB)

	var count int64
	db.DB.Model(&db.Product{}).Where("tenant_id = ?", tenantID).Count(&count)
	if count > 0 {
		fmt.Println("商品已存在，跳过创建")
		return
	}

	samples := []service.ProductInput{
		{Name: "手沖咖啡壺", Description: "細口壺嘴，水流穩定", PriceCents: 128000},
		{Name: "陶瓷濾杯", Description: "錐形設計，均勻萃取", PriceCents: 68000},
		{Name: "咖啡豆（中焙）", Description: "堅果與焦糖調性", PriceCents: 45000},
	}
	for _, sample := range samples {
		if _, err := products.Create(tenantID, sample); err != nil {
			log.Fatal("创建商品失败:", err)
		}
	}

	fmt.Printf("商品: %d 件\n", len(samples))
}
