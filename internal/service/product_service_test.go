package service

import (
	"testing"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) ProductService {
	return NewProductService(repository.NewProductRepo(db), db, newTestHub())
}

func TestCreateProduct_RejectsDuplicateSerialNumber(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	first := &model.Product{SerialNumber: "SN-001", Name: "Steel Bolt M8"}
	require.NoError(t, svc.CreateProduct(first, "admin"))

	dup := &model.Product{SerialNumber: "SN-001", Name: "Different Name"}
	err := svc.CreateProduct(dup, "admin")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, apperror.DetailsOf(err), "SN-001")
}

func TestCreateProduct_ValidatesRequiredFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	err := svc.CreateProduct(&model.Product{}, "admin")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateProduct_IdentityImmutable(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	p := &model.Product{SerialNumber: "SN-001", Name: "Steel Bolt M8"}
	require.NoError(t, svc.CreateProduct(p, "admin"))

	updated, err := svc.UpdateProduct(p.ID, &model.Product{
		SerialNumber: "SN-HACKED",
		Name:         "Steel Bolt M8 v2",
		UnitPrice:    decimal.NewFromFloat(3.75),
		ReorderPoint: 20,
	}, "admin")
	require.NoError(t, err)

	// Serial number tidak ikut berubah
	assert.Equal(t, "SN-001", updated.SerialNumber)
	assert.Equal(t, "Steel Bolt M8 v2", updated.Name)
	assert.True(t, updated.UnitPrice.Equal(decimal.NewFromFloat(3.75)))
	assert.Equal(t, 20, updated.ReorderPoint)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	err := svc.DeleteProduct(uuid.New(), "admin")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
