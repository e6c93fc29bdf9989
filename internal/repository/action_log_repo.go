package repository

import (
	"go-warehouse-ws/internal/model"

	"gorm.io/gorm"
)

type ActionLogRepository interface {
	Append(tx *gorm.DB, entry *model.ActionLog) error
	FindAll() ([]model.ActionLog, error)
	FindByActionType(actionType string) ([]model.ActionLog, error)
}

type actionLogRepo struct {
	db *gorm.DB
}

func NewActionLogRepo(db *gorm.DB) ActionLogRepository {
	return &actionLogRepo{db}
}

func (r *actionLogRepo) Append(tx *gorm.DB, entry *model.ActionLog) error {
	return tx.Create(entry).Error
}

func (r *actionLogRepo) FindAll() ([]model.ActionLog, error) {
	var entries []model.ActionLog
	err := r.db.Preload("User").Order("id DESC").Find(&entries).Error
	return entries, err
}

func (r *actionLogRepo) FindByActionType(actionType string) ([]model.ActionLog, error) {
	var entries []model.ActionLog
	err := r.db.Where("action_type = ?", actionType).Order("id DESC").Find(&entries).Error
	return entries, err
}
