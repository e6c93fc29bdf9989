package service

import (
	"testing"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardService(db *gorm.DB) DashboardService {
	return NewDashboardService(
		repository.NewProductRepo(db),
		repository.NewInventoryRepo(db),
		repository.NewImportOrderRepo(db),
		repository.NewTransactionLogRepo(db))
}

func TestGetDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	importSvc := newImportOrderService(db)
	dashSvc := newDashboardService(db)

	provider := createTestProvider(t, db, "PT Sumber Makmur")
	productA := createTestProduct(t, db, "SN-A", "Product A")
	productB := createTestProduct(t, db, "SN-B", "Product B")

	// Product B di bawah reorder point, dengan purchase price untuk valuasi
	require.NoError(t, db.Model(productB).Updates(map[string]interface{}{
		"reorder_point":  10,
		"purchase_price": 2.5,
	}).Error)
	createTestInventory(t, db, productB.ID, 3)

	// Satu order Pending, satu Completed
	_, err := importSvc.Create(uuid.New(), &CreateImportOrderRequest{
		ProviderID: provider.ID,
		Items:      []CreateImportOrderItem{{ProductID: productA.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	resp, err := importSvc.Create(uuid.New(), &CreateImportOrderRequest{
		ProviderID: provider.ID,
		Items:      []CreateImportOrderItem{{ProductID: productA.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = importSvc.Review(resp.ImportOrderID, uuid.New(), true, "")
	require.NoError(t, err)

	stats, err := dashSvc.GetDashboardStats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.LowStockCount)
	assert.EqualValues(t, 1, stats.PendingOrders)
	// Product A tidak punya purchase price; hanya B yang menyumbang nilai (3 * 2.5)
	assert.True(t, stats.StockValue.Equal(decimal.NewFromFloat(7.5)))
}

func TestGetStockMovement_AggregatesLedgerPerDay(t *testing.T) {
	db := setupTestDB(t)
	importSvc := newImportOrderService(db)
	exportSvc := newExportOrderService(db)
	dashSvc := newDashboardService(db)

	provider := createTestProvider(t, db, "PT Sumber Makmur")
	customer := createTestCustomer(t, db, "CV Pelanggan Setia")
	product := createTestProduct(t, db, "SN-001", "Steel Bolt M8")

	impResp, err := importSvc.Create(uuid.New(), &CreateImportOrderRequest{
		ProviderID: provider.ID,
		Items:      []CreateImportOrderItem{{ProductID: product.ID, Quantity: 8}},
	})
	require.NoError(t, err)
	_, err = importSvc.Review(impResp.ImportOrderID, uuid.New(), true, "")
	require.NoError(t, err)

	expResp, err := exportSvc.Create(uuid.New(), &CreateExportOrderRequest{
		CustomerID: customer.ID,
		Items:      []CreateExportOrderItem{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	_, err = exportSvc.Review(expResp.ExportOrderID, uuid.New(), true, "")
	require.NoError(t, err)

	data, err := dashSvc.GetStockMovement(7)
	require.NoError(t, err)
	require.Len(t, data, 1) // semua entry jatuh di hari ini

	assert.Equal(t, 8, data[0].Inbound)
	assert.Equal(t, 3, data[0].Outbound)

	var count int64
	db.Model(&model.TransactionLog{}).Count(&count)
	assert.EqualValues(t, 2, count)
}
