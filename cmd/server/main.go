package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/storecraft/internal/config"
	"github.com/storecraft/internal/db"
	"github.com/storecraft/internal/handler"
	"github.com/storecraft/internal/router"
	"github.com/storecraft/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	// 确保默认商店存在
	tenants := service.NewTenantService(db.DB)
	tenant, err := tenants.EnsureDefault(cfg.DefaultTenantName)
	if err != nil {
		logger.Fatal("failed to ensure default tenant", zap.Error(err))
	}
	if cfg.DefaultTenantDomain != "" && tenant.Domain == "" {
		tenant.Domain = cfg.DefaultTenantDomain
		if err := db.DB.Save(tenant).Error; err != nil {
			logger.Fatal("failed to bind tenant domain", zap.Error(err))
		}
	}

	// 如配置了超级管理员则确保其账号可用
	if cfg.SuperRootUserName != "" && cfg.SuperRootPassword != "" {
		if err := db.EnsureUser(tenant.ID, cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
			logger.Fatal("failed to ensure admin user", zap.Error(err))
		}
	}

	// 设置并运行 Gin 服务器
	api := handler.NewAPI(db.DB, logger, cfg.UploadDir, cfg.UploadURLPath)
	r := router.SetupRouter(api, cfg.SessionSecret)
	logger.Info("server starting", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}
