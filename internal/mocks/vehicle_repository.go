package mocks

import (
	"context"

	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type VehicleRepository struct {
	mock.Mock
}

func (m *VehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *VehicleRepository) GetByID(id int64) (*model.Vehicle, error) {
	args := m.Called(id)
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *VehicleRepository) UpdateStatus(ctx context.Context, id int64, status model.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *VehicleRepository) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
