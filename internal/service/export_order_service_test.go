package service

import (
	"testing"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExportOrder_GeneratesInvoiceAndStartsPending(t *testing.T) {
	db := setupTestDB(t)
	svc := newExportOrderService(db)

	customer := createTestCustomer(t, db, "CV Pelanggan Setia")
	product := createTestProduct(t, db, "SN-001", "Steel Bolt M8")

	resp, err := svc.Create(uuid.New(), &CreateExportOrderRequest{
		CustomerID: customer.ID,
		Items:      []CreateExportOrderItem{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^EXP-\d{8}-[0-9A-F]{6}$`, resp.InvoiceNumber)

	var order model.ExportOrder
	require.NoError(t, db.Preload("Details").First(&order, resp.ExportOrderID).Error)
	assert.Equal(t, model.ExportStatusPending, order.Status)
	require.Len(t, order.Details, 1)
}

func TestReviewExportOrder_ApproveDeductsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newExportOrderService(db)

	customer := createTestCustomer(t, db, "CV Pelanggan Setia")
	product := createTestProduct(t, db, "SN-001", "Steel Bolt M8")
	createTestInventory(t, db, product.ID, 10)

	resp, err := svc.Create(uuid.New(), &CreateExportOrderRequest{
		CustomerID: customer.ID,
		Items:      []CreateExportOrderItem{{ProductID: product.ID, Quantity: 6}},
	})
	require.NoError(t, err)

	reviewer := uuid.New()
	ok, err := svc.Review(resp.ExportOrderID, reviewer, true, "shipped")
	require.NoError(t, err)
	assert.True(t, ok)

	var inv model.Inventory
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&inv).Error)
	assert.Equal(t, 4, inv.QuantityAvailable)

	var entries []model.TransactionLog
	require.NoError(t, db.Where("order_id = ?", resp.ExportOrderID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, model.TxExport, entries[0].Type)
	assert.Equal(t, 6, entries[0].QuantityChanged)
	assert.Equal(t, 4, entries[0].Quantity)

	var order model.ExportOrder
	require.NoError(t, db.First(&order, resp.ExportOrderID).Error)
	assert.Equal(t, model.ExportStatusCompleted, order.Status)

	var audits []model.ActionLog
	require.NoError(t, db.Where("user_id = ?", reviewer).Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.Equal(t, model.ActionExportCompleted, audits[0].ActionType)
	assert.Equal(t, "ExportOrder", audits[0].EntityType)
}

func TestReviewExportOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	db := setupTestDB(t)
	svc := newExportOrderService(db)

	customer := createTestCustomer(t, db, "CV Pelanggan Setia")
	productA := createTestProduct(t, db, "SN-A", "Product A")
	productB := createTestProduct(t, db, "SN-B", "Product B")
	createTestInventory(t, db, productA.ID, 10)
	createTestInventory(t, db, productB.ID, 2)

	resp, err := svc.Create(uuid.New(), &CreateExportOrderRequest{
		CustomerID: customer.ID,
		Items: []CreateExportOrderItem{
			{ProductID: productA.ID, Quantity: 5}, // cukup
			{ProductID: productB.ID, Quantity: 3}, // kurang
		},
	})
	require.NoError(t, err)

	_, err = svc.Review(resp.ExportOrderID, uuid.New(), true, "")
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))

	// Satu line gagal berarti seluruh approval di-rollback: stok product A
	// tidak boleh ikut berkurang dan status tetap Pending.
	var invA model.Inventory
	require.NoError(t, db.Where("product_id = ?", productA.ID).First(&invA).Error)
	assert.Equal(t, 10, invA.QuantityAvailable)

	var order model.ExportOrder
	require.NoError(t, db.First(&order, resp.ExportOrderID).Error)
	assert.Equal(t, model.ExportStatusPending, order.Status)

	var count int64
	db.Model(&model.TransactionLog{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&model.ActionLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestReviewExportOrder_MissingInventoryRowTreatedAsNoStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newExportOrderService(db)

	customer := createTestCustomer(t, db, "CV Pelanggan Setia")
	product := createTestProduct(t, db, "SN-001", "Steel Bolt M8")

	resp, err := svc.Create(uuid.New(), &CreateExportOrderRequest{
		CustomerID: customer.ID,
		Items:      []CreateExportOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.Review(resp.ExportOrderID, uuid.New(), true, "")
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
}

func TestReviewExportOrder_SecondReviewRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newExportOrderService(db)

	customer := createTestCustomer(t, db, "CV Pelanggan Setia")
	product := createTestProduct(t, db, "SN-001", "Steel Bolt M8")
	createTestInventory(t, db, product.ID, 5)

	resp, err := svc.Create(uuid.New(), &CreateExportOrderRequest{
		CustomerID: customer.ID,
		Items:      []CreateExportOrderItem{{ProductID: product.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = svc.Review(resp.ExportOrderID, uuid.New(), false, "customer canceled")
	require.NoError(t, err)

	_, err = svc.Review(resp.ExportOrderID, uuid.New(), true, "")
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))

	// Order yang sudah Canceled tidak pernah menyentuh stok
	var inv model.Inventory
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&inv).Error)
	assert.Equal(t, 5, inv.QuantityAvailable)
}

func TestListExportOrders_FilterByCustomer(t *testing.T) {
	db := setupTestDB(t)
	svc := newExportOrderService(db)

	customerA := createTestCustomer(t, db, "Customer A")
	customerB := createTestCustomer(t, db, "Customer B")
	product := createTestProduct(t, db, "SN-001", "Steel Bolt M8")

	for _, c := range []*model.BusinessPartner{customerA, customerA, customerB} {
		_, err := svc.Create(uuid.New(), &CreateExportOrderRequest{
			CustomerID: c.ID,
			Items:      []CreateExportOrderItem{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	result, err := svc.List(repository.ExportOrderListFilter{CustomerID: &customerA.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)

	result, err = svc.List(repository.ExportOrderListFilter{Q: "Customer B", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Total)
}
