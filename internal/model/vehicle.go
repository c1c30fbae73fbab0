package model

import "time"

type VehicleStatus string

const (
	VehicleStatusPending  VehicleStatus = "PENDING"
	VehicleStatusApproved VehicleStatus = "APPROVED"
	VehicleStatusRejected VehicleStatus = "REJECTED"
)

type Vehicle struct {
	ID            int64         `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	SellerID      int64         `gorm:"column:seller_id;index"`
	Category      string        `gorm:"column:category"`
	Brand         string        `gorm:"column:brand"`
	Model         string        `gorm:"column:model"`
	Year          int           `gorm:"column:year"`
	Description   string        `gorm:"column:description"`
	StartingPrice int64         `gorm:"column:starting_price"`
	Status        VehicleStatus `gorm:"column:status"`
	ViewsCount    int64         `gorm:"column:views_count"`
	CreatedAt     time.Time     `gorm:"column:created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at"`
}

func (v *Vehicle) IsApproved() bool {
	return v.Status == VehicleStatusApproved
}
