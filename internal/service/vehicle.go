package service

import (
	"context"
	"errors"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"go.uber.org/zap"
)

type CreateVehicleCommand struct {
	SellerID      int64
	Category      string
	Brand         string
	Model         string
	Year          int
	Description   string
	StartingPrice int64
}

// VehicleService is the thin slice of the marketplace's listing CRUD
// that the auction flow needs end-to-end: list a vehicle, approve it.
type VehicleService interface {
	CreateVehicle(ctx context.Context, cmd CreateVehicleCommand) (int64, error)
	ApproveVehicle(ctx context.Context, vehicleID int64) error
}

type vehicle struct {
	vehicleRepo repository.VehicleRepository
	logger      *zap.Logger
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, logger *zap.Logger) VehicleService {
	return &vehicle{vehicleRepo: vehicleRepo, logger: logger}
}

func (v *vehicle) CreateVehicle(ctx context.Context, cmd CreateVehicleCommand) (int64, error) {
	record := model.Vehicle{
		SellerID:      cmd.SellerID,
		Category:      cmd.Category,
		Brand:         cmd.Brand,
		Model:         cmd.Model,
		Year:          cmd.Year,
		Description:   cmd.Description,
		StartingPrice: cmd.StartingPrice,
		Status:        model.VehicleStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := v.vehicleRepo.Create(ctx, &record); err != nil {
		v.logger.Error("Failed to create vehicle", zap.Int64("sellerID", cmd.SellerID), zap.Error(err))
		return 0, NewServiceError(ErrCodeDatabase, err)
	}

	v.logger.Info("Vehicle created, awaiting approval",
		zap.Int64("vehicleID", record.ID),
		zap.Int64("sellerID", cmd.SellerID))

	return record.ID, nil
}

func (v *vehicle) ApproveVehicle(ctx context.Context, vehicleID int64) error {
	err := v.vehicleRepo.UpdateStatus(ctx, vehicleID, model.VehicleStatusApproved)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return NewServiceError(constants.ErrCodeVehicleNotFound, err)
		}

		return NewServiceError(ErrCodeDatabase, err)
	}

	v.logger.Info("Vehicle approved", zap.Int64("vehicleID", vehicleID))

	return nil
}
