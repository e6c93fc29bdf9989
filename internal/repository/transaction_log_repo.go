package repository

import (
	"time"

	"go-warehouse-ws/internal/model"

	"gorm.io/gorm"
)

type TransactionLogRepository interface {
	Append(tx *gorm.DB, entry *model.TransactionLog) error
	FindAll() ([]model.TransactionLog, error)
	FindByOrderID(orderID uint, txType model.TransactionLogType) ([]model.TransactionLog, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type transactionLogRepo struct {
	db *gorm.DB
}

func NewTransactionLogRepo(db *gorm.DB) TransactionLogRepository {
	return &transactionLogRepo{db}
}

// Append only; ledger entries are never updated or deleted.
func (r *transactionLogRepo) Append(tx *gorm.DB, entry *model.TransactionLog) error {
	return tx.Create(entry).Error
}

func (r *transactionLogRepo) FindAll() ([]model.TransactionLog, error) {
	var entries []model.TransactionLog
	err := r.db.Preload("Product").Preload("CreatedByUser").Order("id DESC").Find(&entries).Error
	return entries, err
}

func (r *transactionLogRepo) FindByOrderID(orderID uint, txType model.TransactionLogType) ([]model.TransactionLog, error) {
	var entries []model.TransactionLog
	err := r.db.Where("order_id = ? AND type = ?", orderID, txType).Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *transactionLogRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Query untuk aggregate ledger entries per hari
	rows, err := r.db.Model(&model.TransactionLog{}).
		Select(`
			DATE(transaction_date) as date,
			COALESCE(SUM(CASE WHEN type = 'IMPORT' THEN quantity_changed ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'EXPORT' THEN quantity_changed ELSE 0 END), 0) as outbound
		`).
		Where("transaction_date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(transaction_date)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
