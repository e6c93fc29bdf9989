package service

import (
	"fmt"
	"testing"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB membuka SQLite in-memory (unik per test) dan migrate semua model.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Satu koneksi supaya in-memory DB tidak hilang antar query
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Product{}, &model.BusinessPartner{}, &model.Location{},
		&model.Inventory{}, &model.ImportOrder{}, &model.ImportDetail{},
		&model.ExportOrder{}, &model.ExportDetail{},
		&model.TransactionLog{}, &model.ActionLog{},
	)
	require.NoError(t, err)

	require.NoError(t, repository.NewLocationRepo(db).SeedDefaults())

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

func newImportOrderService(db *gorm.DB) ImportOrderService {
	return NewImportOrderService(
		repository.NewImportOrderRepo(db),
		repository.NewProductRepo(db),
		repository.NewPartnerRepo(db),
		repository.NewInventoryRepo(db),
		repository.NewLocationRepo(db),
		repository.NewTransactionLogRepo(db),
		repository.NewActionLogRepo(db),
		db, newTestHub())
}

func newExportOrderService(db *gorm.DB) ExportOrderService {
	return NewExportOrderService(
		repository.NewExportOrderRepo(db),
		repository.NewProductRepo(db),
		repository.NewPartnerRepo(db),
		repository.NewInventoryRepo(db),
		repository.NewTransactionLogRepo(db),
		repository.NewActionLogRepo(db),
		db, newTestHub())
}

func createTestProduct(t *testing.T, db *gorm.DB, serial, name string) *model.Product {
	t.Helper()
	p := &model.Product{SerialNumber: serial, Name: name, Unit: "pcs"}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createTestProvider(t *testing.T, db *gorm.DB, name string) *model.BusinessPartner {
	t.Helper()
	p := &model.BusinessPartner{Name: name, Kind: model.PartnerProvider}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createTestCustomer(t *testing.T, db *gorm.DB, name string) *model.BusinessPartner {
	t.Helper()
	p := &model.BusinessPartner{Name: name, Kind: model.PartnerCustomer}
	require.NoError(t, db.Create(p).Error)
	return p
}

// createTestInventory seeds an existing stock row at the default location.
func createTestInventory(t *testing.T, db *gorm.DB, productID uuid.UUID, qty int) *model.Inventory {
	t.Helper()
	var loc model.Location
	require.NoError(t, db.Where("code = ?", model.DefaultReceivingLocation).First(&loc).Error)
	inv := &model.Inventory{ProductID: productID, QuantityAvailable: qty, LocationID: loc.ID}
	require.NoError(t, db.Create(inv).Error)
	return inv
}
