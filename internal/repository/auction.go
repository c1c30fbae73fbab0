package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAuctionNotFound = errors.New("AUCTION_NOT_FOUND")
var ErrAuctionDuplicate = errors.New("AUCTION_DUPLICATE")

type ListAuctionsQuery struct {
	Statuses []model.AuctionStatus
	Category string
	Limit    int
	Offset   int
}

type AuctionRepository interface {
	Create(ctx context.Context, auction *model.Auction) error
	Update(ctx context.Context, auction *model.Auction) error
	GetByID(id int64) (*model.Auction, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Auction, error)
	GetByVehicleID(vehicleID int64) (*model.Auction, error)
	List(query ListAuctionsQuery) ([]model.Auction, error)
	FindDueForActivation(now time.Time, limit int) ([]model.Auction, error)
	FindExpired(now time.Time, limit int) ([]model.Auction, error)
}

type Auction struct {
	db *gorm.DB
}

func NewAuctionRepository(db *gorm.DB) AuctionRepository {
	return &Auction{db: db}
}

func (a *Auction) Create(ctx context.Context, auction *model.Auction) error {
	db := GetTx(ctx, a.db)
	err := db.Create(auction).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrAuctionDuplicate
	}

	return err
}

func (a *Auction) Update(ctx context.Context, auction *model.Auction) error {
	db := GetTx(ctx, a.db)
	return db.Model(auction).Where("id = ?", auction.ID).Updates(auction).Error
}

func (a *Auction) GetByID(id int64) (*model.Auction, error) {
	var auction model.Auction

	err := a.db.Preload("Vehicle").Where("id = ?", id).First(&auction).Error
	if err == nil {
		return &auction, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuctionNotFound
	}

	return nil, err
}

// GetByIDForUpdate takes a row lock on the auction. Must run inside a
// TxManager transaction; the lock holds until commit.
func (a *Auction) GetByIDForUpdate(ctx context.Context, id int64) (*model.Auction, error) {
	db := GetTx(ctx, a.db)

	var auction model.Auction
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Vehicle").
		Where("id = ?", id).
		First(&auction).Error
	if err == nil {
		return &auction, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuctionNotFound
	}

	return nil, err
}

func (a *Auction) GetByVehicleID(vehicleID int64) (*model.Auction, error) {
	var auction model.Auction

	err := a.db.Where("vehicle_id = ?", vehicleID).First(&auction).Error
	if err == nil {
		return &auction, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuctionNotFound
	}

	return nil, err
}

func (a *Auction) List(query ListAuctionsQuery) ([]model.Auction, error) {
	db := a.db.Preload("Vehicle").
		Joins("JOIN vehicles ON vehicles.id = auctions.vehicle_id").
		Where("vehicles.status = ?", model.VehicleStatusApproved)

	if len(query.Statuses) > 0 {
		db = db.Where("auctions.status IN ?", query.Statuses)
	}

	if query.Category != "" {
		db = db.Where("vehicles.category = ?", query.Category)
	}

	var auctions []model.Auction
	err := db.Order("auctions.end_time ASC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}

	return auctions, nil
}

func (a *Auction) FindDueForActivation(now time.Time, limit int) ([]model.Auction, error) {
	var auctions []model.Auction

	err := a.db.Where("status = ? AND start_time <= ? AND end_time > ?",
		model.AuctionStatusScheduled, now, now).
		Limit(limit).
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}

	return auctions, nil
}

func (a *Auction) FindExpired(now time.Time, limit int) ([]model.Auction, error) {
	var auctions []model.Auction

	err := a.db.Where("status IN ? AND end_time <= ?",
		[]model.AuctionStatus{model.AuctionStatusScheduled, model.AuctionStatusActive}, now).
		Limit(limit).
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}

	return auctions, nil
}
