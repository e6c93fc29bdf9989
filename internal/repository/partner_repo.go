package repository

import (
	"go-warehouse-ws/internal/model"

	"gorm.io/gorm"
)

type PartnerRepository interface {
	Create(partner *model.BusinessPartner) error
	FindAll(kind model.PartnerKind) ([]model.BusinessPartner, error)
	FindByID(id uint) (*model.BusinessPartner, error)
}

type partnerRepo struct {
	db *gorm.DB
}

func NewPartnerRepo(db *gorm.DB) PartnerRepository {
	return &partnerRepo{db}
}

func (r *partnerRepo) Create(partner *model.BusinessPartner) error {
	return r.db.Create(partner).Error
}

// FindAll dengan optional kind filter (kosong = semua)
func (r *partnerRepo) FindAll(kind model.PartnerKind) ([]model.BusinessPartner, error) {
	var partners []model.BusinessPartner
	query := r.db
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Order("name ASC").Find(&partners).Error
	return partners, err
}

func (r *partnerRepo) FindByID(id uint) (*model.BusinessPartner, error) {
	var partner model.BusinessPartner
	if err := r.db.First(&partner, id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}
