package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-warehouse-ws/internal/handler"
	"go-warehouse-ws/internal/middleware"
	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/service"
	"go-warehouse-ws/internal/ws"
	"go-warehouse-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Product{}, &model.BusinessPartner{}, &model.Location{},
		&model.Inventory{}, &model.ImportOrder{}, &model.ImportDetail{},
		&model.ExportOrder{}, &model.ExportDetail{},
		&model.TransactionLog{}, &model.ActionLog{},
	)

	// 3. Seed default privileges, roles, locations, and admin user
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	partnerRepo := repository.NewPartnerRepo(db)
	locationRepo := repository.NewLocationRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	importOrderRepo := repository.NewImportOrderRepo(db)
	exportOrderRepo := repository.NewExportOrderRepo(db)
	txLogRepo := repository.NewTransactionLogRepo(db)
	actionLogRepo := repository.NewActionLogRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	importOrderService := service.NewImportOrderService(
		importOrderRepo, productRepo, partnerRepo, inventoryRepo,
		locationRepo, txLogRepo, actionLogRepo, db, wsHub)
	exportOrderService := service.NewExportOrderService(
		exportOrderRepo, productRepo, partnerRepo, inventoryRepo,
		txLogRepo, actionLogRepo, db, wsHub)
	productService := service.NewProductService(productRepo, db, wsHub)
	invService := service.NewInventoryService(inventoryRepo, txLogRepo, actionLogRepo)
	dashService := service.NewDashboardService(productRepo, inventoryRepo, importOrderRepo, txLogRepo)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo, actionLogRepo, db)

	importOrderHandler := handler.NewImportOrderHandler(importOrderService)
	exportOrderHandler := handler.NewExportOrderHandler(exportOrderService)
	productHandler := handler.NewProductHandler(productService)
	invHandler := handler.NewInventoryHandler(invService)
	partnerHandler := handler.NewPartnerHandler(partnerRepo, locationRepo)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Smart Warehouse v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard Routes
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetDashboardStats)
	// Movement chart diturunkan dari ledger; pemegang log:view juga boleh lihat
	protected.Get("/dashboard/stock-movement",
		middleware.RequireAnyPrivilege("dashboard:view", "log:view"), dashHandler.GetStockMovement)

	// Product Routes
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), productHandler.DeleteProduct)

	// Partner & Location Routes
	protected.Get("/partners", middleware.RequirePrivilege("partner:view"), partnerHandler.GetPartners)
	protected.Get("/locations", middleware.RequirePrivilege("location:view"), partnerHandler.GetLocations)

	// Inventory & Ledger Routes
	protected.Get("/inventory", middleware.RequirePrivilege("inventory:view"), invHandler.GetInventory)
	protected.Get("/transaction-logs", middleware.RequirePrivilege("log:view"), invHandler.GetTransactionLogs)
	protected.Get("/action-logs", middleware.RequirePrivilege("log:view"), invHandler.GetActionLogs)

	// Import Order Routes (staff create, manager review)
	protected.Get("/import-orders", middleware.RequirePrivilege("import_order:view"), importOrderHandler.GetImportOrders)
	protected.Get("/import-orders/:id", middleware.RequirePrivilege("import_order:view"), importOrderHandler.GetImportOrder)
	protected.Post("/import-orders", middleware.RequirePrivilege("import_order:create"), importOrderHandler.CreateImportOrder)
	protected.Put("/import-orders/:id/review", middleware.RequirePrivilege("import_order:review"), importOrderHandler.ReviewImportOrder)

	// Export Order Routes
	protected.Get("/export-orders", middleware.RequirePrivilege("export_order:view"), exportOrderHandler.GetExportOrders)
	protected.Get("/export-orders/:id", middleware.RequirePrivilege("export_order:view"), exportOrderHandler.GetExportOrder)
	protected.Post("/export-orders", middleware.RequirePrivilege("export_order:create"), exportOrderHandler.CreateExportOrder)
	protected.Put("/export-orders/:id/review", middleware.RequirePrivilege("export_order:review"), exportOrderHandler.ReviewExportOrder)

	// User Management Routes
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges Route (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates default privileges, roles, locations, and the admin user
func seedDefaults(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	locationRepo := repository.NewLocationRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Seed the default receiving location (lazy inventory rows point here)
	if err := locationRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed locations: %v", err)
	}

	// 4. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// MASTER_ADMIN gets ALL privileges
	masterRole, err := roleRepo.FindByCode(model.RoleMasterAdmin)
	if err == nil && len(masterRole.Privileges) == 0 {
		db.Model(masterRole).Association("Privileges").Replace(allPrivileges)
		log.Println("MASTER_ADMIN role assigned all privileges")
	}

	// MANAGER reviews orders; STAFF creates them
	seedRolePrivileges(db, roleRepo, privilegeRepo, model.RoleManager, model.ManagerPrivilegeCodes)
	seedRolePrivileges(db, roleRepo, privilegeRepo, model.RoleStaff, model.StaffPrivilegeCodes)

	// 5. Create default admin user with MASTER_ADMIN role
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		masterRole, _ := roleRepo.FindByCode(model.RoleMasterAdmin)

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Master Administrator",
			RoleID:     &masterRole.ID,
			IsActive:   true,
			Privileges: masterRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (MASTER_ADMIN)")
		}
	}
}

func seedRolePrivileges(db *gorm.DB, roleRepo repository.RoleRepository, privilegeRepo repository.PrivilegeRepository, roleCode string, codes []string) {
	role, err := roleRepo.FindByCode(roleCode)
	if err != nil || len(role.Privileges) > 0 {
		return
	}
	privileges, err := privilegeRepo.FindByCodes(codes)
	if err != nil {
		log.Printf("Warning: Failed to resolve privileges for role %s: %v", roleCode, err)
		return
	}
	if err := db.Model(role).Association("Privileges").Replace(privileges); err != nil {
		log.Printf("Warning: Failed to assign privileges to role %s: %v", roleCode, err)
	}
}
