package repository

import (
	"context"
	"errors"

	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"gorm.io/gorm"
)

var ErrNoBids = errors.New("NO_BIDS")

type BidRepository interface {
	Create(ctx context.Context, bid *model.Bid) error
	GetHighest(auctionID int64) (*model.Bid, error)
	ListRecent(auctionID int64, limit int) ([]model.Bid, error)
}

type Bid struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) BidRepository {
	return &Bid{db: db}
}

func (b *Bid) Create(ctx context.Context, bid *model.Bid) error {
	db := GetTx(ctx, b.db)
	return db.Create(bid).Error
}

func (b *Bid) GetHighest(auctionID int64) (*model.Bid, error) {
	var bid model.Bid

	err := b.db.Where("auction_id = ?", auctionID).
		Order("bid_amount DESC").
		First(&bid).Error
	if err == nil {
		return &bid, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoBids
	}

	return nil, err
}

func (b *Bid) ListRecent(auctionID int64, limit int) ([]model.Bid, error) {
	var bids []model.Bid

	err := b.db.Where("auction_id = ?", auctionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bids).Error
	if err != nil {
		return nil, err
	}

	return bids, nil
}
