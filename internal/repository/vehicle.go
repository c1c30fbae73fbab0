package repository

import (
	"context"
	"errors"

	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("VEHICLE_NOT_FOUND")

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	GetByID(id int64) (*model.Vehicle, error)
	UpdateStatus(ctx context.Context, id int64, status model.VehicleStatus) error
	IncrementViews(ctx context.Context, id int64) error
}

type Vehicle struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &Vehicle{db: db}
}

func (v *Vehicle) Create(ctx context.Context, vehicle *model.Vehicle) error {
	db := GetTx(ctx, v.db)
	return db.Create(vehicle).Error
}

func (v *Vehicle) GetByID(id int64) (*model.Vehicle, error) {
	var vehicle model.Vehicle

	err := v.db.Where("id = ?", id).First(&vehicle).Error
	if err == nil {
		return &vehicle, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVehicleNotFound
	}

	return nil, err
}

func (v *Vehicle) UpdateStatus(ctx context.Context, id int64, status model.VehicleStatus) error {
	db := GetTx(ctx, v.db)
	result := db.Model(&model.Vehicle{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

func (v *Vehicle) IncrementViews(ctx context.Context, id int64) error {
	db := GetTx(ctx, v.db)
	return db.Model(&model.Vehicle{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}
