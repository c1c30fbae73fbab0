package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"gorm.io/gorm"
)

var ErrDepositNotFound = errors.New("DEPOSIT_NOT_FOUND")
var ErrDepositDuplicate = errors.New("DEPOSIT_DUPLICATE")

type DepositRepository interface {
	Create(ctx context.Context, deposit *model.Deposit) error
	Update(ctx context.Context, deposit *model.Deposit) error
	Get(auctionID, userID int64) (*model.Deposit, error)
	GetPaid(auctionID, userID int64) (*model.Deposit, error)
	GetByPaymentRef(ref string) (*model.Deposit, error)
	ListByAuction(auctionID int64) ([]model.Deposit, error)
}

type Deposit struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) DepositRepository {
	return &Deposit{db: db}
}

func (d *Deposit) Create(ctx context.Context, deposit *model.Deposit) error {
	db := GetTx(ctx, d.db)
	err := db.Create(deposit).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDepositDuplicate
	}

	return err
}

func (d *Deposit) Update(ctx context.Context, deposit *model.Deposit) error {
	db := GetTx(ctx, d.db)
	return db.Model(deposit).Where("id = ?", deposit.ID).Updates(deposit).Error
}

func (d *Deposit) Get(auctionID, userID int64) (*model.Deposit, error) {
	var deposit model.Deposit

	err := d.db.Where("auction_id = ? AND user_id = ?", auctionID, userID).First(&deposit).Error
	if err == nil {
		return &deposit, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDepositNotFound
	}

	return nil, err
}

func (d *Deposit) GetPaid(auctionID, userID int64) (*model.Deposit, error) {
	var deposit model.Deposit

	err := d.db.Where("auction_id = ? AND user_id = ? AND status = ?",
		auctionID, userID, model.DepositStatusPaid).First(&deposit).Error
	if err == nil {
		return &deposit, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDepositNotFound
	}

	return nil, err
}

func (d *Deposit) GetByPaymentRef(ref string) (*model.Deposit, error) {
	var deposit model.Deposit

	err := d.db.Where("payment_ref = ?", ref).First(&deposit).Error
	if err == nil {
		return &deposit, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDepositNotFound
	}

	return nil, err
}

func (d *Deposit) ListByAuction(auctionID int64) ([]model.Deposit, error) {
	var deposits []model.Deposit

	err := d.db.Where("auction_id = ?", auctionID).
		Order("created_at ASC").
		Find(&deposits).Error
	if err != nil {
		return nil, err
	}

	return deposits, nil
}
