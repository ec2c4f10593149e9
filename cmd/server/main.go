package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/procurelink/backend/config"
	"github.com/procurelink/backend/internal/eventbus"
	"github.com/procurelink/backend/internal/handler"
	"github.com/procurelink/backend/internal/pkg/database"
	"github.com/procurelink/backend/internal/repository"
	"github.com/procurelink/backend/internal/router"
	"github.com/procurelink/backend/internal/service"
	"github.com/procurelink/backend/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化事件总线和审计订阅者
	bus := eventbus.NewBus()
	subscriber.NewTemplateEventSubscriber().Register(bus)

	// 初始化 Repository
	templateRepo := repository.NewTemplateRepository(db)

	// 初始化 Service
	editorService := service.NewEditorService(templateRepo, bus)
	templateService := service.NewTemplateService(templateRepo, bus)

	// 初始化 Handler
	editorHandler := handler.NewEditorHandler(editorService)
	templateHandler := handler.NewTemplateHandler(templateService, editorService)
	catalogHandler := handler.NewCatalogHandler()

	// 设置路由
	r := router.Setup(cfg, editorHandler, templateHandler, catalogHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
