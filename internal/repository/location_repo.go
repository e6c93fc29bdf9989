package repository

import (
	"go-warehouse-ws/internal/model"

	"gorm.io/gorm"
)

type LocationRepository interface {
	FindAll() ([]model.Location, error)
	FindByCode(code string) (*model.Location, error)
	SeedDefaults() error
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db}
}

func (r *locationRepo) FindAll() ([]model.Location, error) {
	var locations []model.Location
	err := r.db.Order("code ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) FindByCode(code string) (*model.Location, error) {
	var location model.Location
	if err := r.db.Where("code = ?", code).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// SeedDefaults creates the default receiving location if missing
func (r *locationRepo) SeedDefaults() error {
	for _, l := range model.DefaultLocations {
		var existing model.Location
		if err := r.db.Where("code = ?", l.Code).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := r.db.Create(&l).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
