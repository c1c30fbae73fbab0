package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
	"github.com/otomarket/auction-services/auctiongateway/internal/mocks"
	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func activeAuction(now time.Time) *model.Auction {
	return &model.Auction{
		ID:           5,
		VehicleID:    10,
		CurrentPrice: 10_000_000,
		Status:       model.AuctionStatusActive,
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(time.Hour),
		TotalBids:    0,
		Vehicle:      model.Vehicle{ID: 10, SellerID: 7},
	}
}

func TestBid_PlaceBid(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.PlaceBidCommand{
		AuctionID: 5,
		UserID:    42,
		Amount:    10_100_001,
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
	}

	t.Run("accepts bid above minimum increment", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}
		mockDepositRepo := &mocks.DepositRepository{}
		mockTxManager := &mocks.TxManager{}
		mockNotifications := &mocks.NotificationService{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, mockDepositRepo, mockTxManager,
			mockNotifications, service.NewMaskedDirectory(), testConfig(), logger)

		auc := activeAuction(time.Now())

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(auc, nil)
		mockDepositRepo.On("GetPaid", int64(5), int64(42)).Return(&model.Deposit{Status: model.DepositStatusPaid}, nil)
		mockBidRepo.On("GetHighest", int64(5)).Return((*model.Bid)(nil), repository.ErrNoBids)
		mockBidRepo.On("Create", mock.Anything, mock.MatchedBy(func(record *model.Bid) bool {
			return record.AuctionID == 5 &&
				record.UserID == 42 &&
				record.BidAmount == 10_100_001 &&
				record.PreviousAmount == 10_000_000
		})).Return(nil)
		mockAuctionRepo.On("Update", mock.Anything, mock.MatchedBy(func(update *model.Auction) bool {
			return update.CurrentPrice == 10_100_001 && update.TotalBids == 1
		})).Return(nil)

		resp, err := svc.PlaceBid(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, int64(10_100_001), resp.CurrentPrice)
		assert.Equal(t, 1, resp.TotalBids)

		mockAuctionRepo.AssertExpectations(t)
		mockBidRepo.AssertExpectations(t)
		mockNotifications.AssertNotCalled(t, "RecordOutbid")
	})

	t.Run("accepts bid exactly at minimum increment", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}
		mockDepositRepo := &mocks.DepositRepository{}
		mockTxManager := &mocks.TxManager{}
		mockNotifications := &mocks.NotificationService{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, mockDepositRepo, mockTxManager,
			mockNotifications, service.NewMaskedDirectory(), testConfig(), logger)

		auc := activeAuction(time.Now())

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(auc, nil)
		mockDepositRepo.On("GetPaid", int64(5), int64(42)).Return(&model.Deposit{Status: model.DepositStatusPaid}, nil)
		mockBidRepo.On("GetHighest", int64(5)).Return((*model.Bid)(nil), repository.ErrNoBids)
		mockBidRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		exact := cmd
		exact.Amount = 10_100_000

		resp, err := svc.PlaceBid(context.Background(), exact)

		assert.NoError(t, err)
		assert.Equal(t, int64(10_100_000), resp.CurrentPrice)
	})

	t.Run("rejects bid below minimum increment", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}
		mockDepositRepo := &mocks.DepositRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, mockDepositRepo, mockTxManager,
			&mocks.NotificationService{}, service.NewMaskedDirectory(), testConfig(), logger)

		auc := activeAuction(time.Now())

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(auc, nil)
		mockDepositRepo.On("GetPaid", int64(5), int64(42)).Return(&model.Deposit{Status: model.DepositStatusPaid}, nil)

		low := cmd
		low.Amount = 10_050_000

		_, err := svc.PlaceBid(context.Background(), low)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeBidTooLow, serviceErr.Code)
		mockBidRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects bid without paid deposit", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}
		mockDepositRepo := &mocks.DepositRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, mockDepositRepo, mockTxManager,
			&mocks.NotificationService{}, service.NewMaskedDirectory(), testConfig(), logger)

		auc := activeAuction(time.Now())

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(auc, nil)
		mockDepositRepo.On("GetPaid", int64(5), int64(42)).Return((*model.Deposit)(nil), repository.ErrDepositNotFound)

		_, err := svc.PlaceBid(context.Background(), cmd)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeDepositRequired, serviceErr.Code)
		mockBidRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects seller bidding on own vehicle", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}
		mockDepositRepo := &mocks.DepositRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, mockDepositRepo, mockTxManager,
			&mocks.NotificationService{}, service.NewMaskedDirectory(), testConfig(), logger)

		auc := activeAuction(time.Now())

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(auc, nil)
		mockDepositRepo.On("GetPaid", int64(5), int64(7)).Return(&model.Deposit{Status: model.DepositStatusPaid}, nil)

		seller := cmd
		seller.UserID = 7

		_, err := svc.PlaceBid(context.Background(), seller)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeSelfBid, serviceErr.Code)
	})

	t.Run("rejects bid on ended auction", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, &mocks.DepositRepository{}, mockTxManager,
			&mocks.NotificationService{}, service.NewMaskedDirectory(), testConfig(), logger)

		auc := activeAuction(time.Now())
		auc.EndTime = time.Now().Add(-time.Minute)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(auc, nil)

		_, err := svc.PlaceBid(context.Background(), cmd)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeAuctionNotActive, serviceErr.Code)
	})

	t.Run("rejects bid on unknown auction", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewBidService(mockAuctionRepo, &mocks.BidRepository{}, &mocks.DepositRepository{},
			mockTxManager, &mocks.NotificationService{}, service.NewMaskedDirectory(), testConfig(), logger)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return((*model.Auction)(nil), repository.ErrAuctionNotFound)

		_, err := svc.PlaceBid(context.Background(), cmd)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeAuctionNotFound, serviceErr.Code)
	})

	t.Run("notifies previous highest bidder", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}
		mockDepositRepo := &mocks.DepositRepository{}
		mockTxManager := &mocks.TxManager{}
		mockNotifications := &mocks.NotificationService{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, mockDepositRepo, mockTxManager,
			mockNotifications, service.NewMaskedDirectory(), testConfig(), logger)

		auc := activeAuction(time.Now())
		auc.CurrentPrice = 10_100_000
		auc.TotalBids = 1

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(auc, nil)
		mockDepositRepo.On("GetPaid", int64(5), int64(42)).Return(&model.Deposit{Status: model.DepositStatusPaid}, nil)
		mockBidRepo.On("GetHighest", int64(5)).Return(&model.Bid{UserID: 33, BidAmount: 10_100_000}, nil)
		mockBidRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		mockNotifications.On("RecordOutbid", mock.Anything, int64(33), int64(5), int64(10_200_000)).Return(nil)

		raise := cmd
		raise.Amount = 10_200_000

		resp, err := svc.PlaceBid(context.Background(), raise)

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.TotalBids)
		mockNotifications.AssertExpectations(t)
	})

	t.Run("accepted bid stands when outbid notification fails", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}
		mockDepositRepo := &mocks.DepositRepository{}
		mockTxManager := &mocks.TxManager{}
		mockNotifications := &mocks.NotificationService{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, mockDepositRepo, mockTxManager,
			mockNotifications, service.NewMaskedDirectory(), testConfig(), logger)

		auc := activeAuction(time.Now())
		auc.CurrentPrice = 10_100_000
		auc.TotalBids = 1

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(auc, nil)
		mockDepositRepo.On("GetPaid", int64(5), int64(42)).Return(&model.Deposit{Status: model.DepositStatusPaid}, nil)
		mockBidRepo.On("GetHighest", int64(5)).Return(&model.Bid{UserID: 33, BidAmount: 10_100_000}, nil)
		mockBidRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		mockNotifications.On("RecordOutbid", mock.Anything, int64(33), int64(5), int64(10_200_000)).
			Return(errors.New("database connection failed"))

		raise := cmd
		raise.Amount = 10_200_000

		resp, err := svc.PlaceBid(context.Background(), raise)

		assert.NoError(t, err)
		assert.Equal(t, int64(10_200_000), resp.CurrentPrice)
	})

	t.Run("extends deadline for bid inside closing window", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}
		mockDepositRepo := &mocks.DepositRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, mockDepositRepo, mockTxManager,
			&mocks.NotificationService{}, service.NewMaskedDirectory(), testConfig(), logger)

		auc := activeAuction(time.Now())
		auc.EndTime = time.Now().Add(2 * time.Minute)
		originalEnd := auc.EndTime

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(auc, nil)
		mockDepositRepo.On("GetPaid", int64(5), int64(42)).Return(&model.Deposit{Status: model.DepositStatusPaid}, nil)
		mockBidRepo.On("GetHighest", int64(5)).Return((*model.Bid)(nil), repository.ErrNoBids)
		mockBidRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockAuctionRepo.On("Update", mock.Anything, mock.MatchedBy(func(update *model.Auction) bool {
			return update.EndTime.Equal(originalEnd.Add(10 * time.Minute))
		})).Return(nil)

		resp, err := svc.PlaceBid(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, originalEnd.Add(10*time.Minute), resp.EndTime)
		mockAuctionRepo.AssertExpectations(t)
	})
}

func TestBid_History(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns recent bids with masked names", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, &mocks.DepositRepository{},
			&mocks.TxManager{}, &mocks.NotificationService{}, service.NewMaskedDirectory(), testConfig(), logger)

		now := time.Now()
		mockAuctionRepo.On("GetByID", int64(5)).Return(activeAuction(now), nil)
		mockBidRepo.On("ListRecent", int64(5), 20).Return([]model.Bid{
			{UserID: 42, BidAmount: 10_200_000, CreatedAt: now},
			{UserID: 33, BidAmount: 10_100_000, CreatedAt: now.Add(-time.Minute)},
		}, nil)

		entries, err := svc.History(context.Background(), 5)

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, "Bidder 42", entries[0].BidderName)
		assert.Equal(t, int64(10_200_000), entries[0].Amount)
		assert.Equal(t, "Bidder 33", entries[1].BidderName)
	})

	t.Run("returns not found for unknown auction", func(t *testing.T) {
		mockAuctionRepo := &mocks.AuctionRepository{}
		mockBidRepo := &mocks.BidRepository{}

		svc := service.NewBidService(mockAuctionRepo, mockBidRepo, &mocks.DepositRepository{},
			&mocks.TxManager{}, &mocks.NotificationService{}, service.NewMaskedDirectory(), testConfig(), logger)

		mockAuctionRepo.On("GetByID", int64(5)).Return((*model.Auction)(nil), repository.ErrAuctionNotFound)

		_, err := svc.History(context.Background(), 5)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeAuctionNotFound, serviceErr.Code)
		mockBidRepo.AssertNotCalled(t, "ListRecent")
	})
}

// bidRaceStore backs the in-memory fakes used to exercise concurrent
// admission. All state mutations go through its mutex, mimicking the
// row-level isolation the real repositories get from the database.
type bidRaceStore struct {
	mu      sync.Mutex
	auction model.Auction
	bids    []model.Bid
}

type fakeRaceAuctionRepo struct{ store *bidRaceStore }

func (f *fakeRaceAuctionRepo) Create(ctx context.Context, auction *model.Auction) error {
	return errors.New("not implemented")
}

func (f *fakeRaceAuctionRepo) Update(ctx context.Context, auction *model.Auction) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.auction.CurrentPrice = auction.CurrentPrice
	f.store.auction.TotalBids = auction.TotalBids
	f.store.auction.EndTime = auction.EndTime
	f.store.auction.Status = auction.Status
	return nil
}

func (f *fakeRaceAuctionRepo) GetByID(id int64) (*model.Auction, error) {
	return f.GetByIDForUpdate(context.Background(), id)
}

func (f *fakeRaceAuctionRepo) GetByIDForUpdate(ctx context.Context, id int64) (*model.Auction, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	snapshot := f.store.auction
	return &snapshot, nil
}

func (f *fakeRaceAuctionRepo) GetByVehicleID(vehicleID int64) (*model.Auction, error) {
	return nil, repository.ErrAuctionNotFound
}

func (f *fakeRaceAuctionRepo) List(query repository.ListAuctionsQuery) ([]model.Auction, error) {
	return nil, nil
}

func (f *fakeRaceAuctionRepo) FindDueForActivation(now time.Time, limit int) ([]model.Auction, error) {
	return nil, nil
}

func (f *fakeRaceAuctionRepo) FindExpired(now time.Time, limit int) ([]model.Auction, error) {
	return nil, nil
}

type fakeRaceBidRepo struct{ store *bidRaceStore }

func (f *fakeRaceBidRepo) Create(ctx context.Context, bid *model.Bid) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	bid.ID = int64(len(f.store.bids) + 1)
	f.store.bids = append(f.store.bids, *bid)
	return nil
}

func (f *fakeRaceBidRepo) GetHighest(auctionID int64) (*model.Bid, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if len(f.store.bids) == 0 {
		return nil, repository.ErrNoBids
	}
	highest := f.store.bids[0]
	for _, b := range f.store.bids[1:] {
		if b.BidAmount > highest.BidAmount {
			highest = b
		}
	}
	return &highest, nil
}

func (f *fakeRaceBidRepo) ListRecent(auctionID int64, limit int) ([]model.Bid, error) {
	return nil, nil
}

type fakeRaceDepositRepo struct{}

func (f *fakeRaceDepositRepo) Create(ctx context.Context, deposit *model.Deposit) error { return nil }
func (f *fakeRaceDepositRepo) Update(ctx context.Context, deposit *model.Deposit) error { return nil }

func (f *fakeRaceDepositRepo) Get(auctionID, userID int64) (*model.Deposit, error) {
	return &model.Deposit{AuctionID: auctionID, UserID: userID, Status: model.DepositStatusPaid}, nil
}

func (f *fakeRaceDepositRepo) GetPaid(auctionID, userID int64) (*model.Deposit, error) {
	return f.Get(auctionID, userID)
}

func (f *fakeRaceDepositRepo) GetByPaymentRef(ref string) (*model.Deposit, error) {
	return nil, repository.ErrDepositNotFound
}

func (f *fakeRaceDepositRepo) ListByAuction(auctionID int64) ([]model.Deposit, error) {
	return nil, nil
}

type fakeRaceTxManager struct{}

func (f *fakeRaceTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestBid_PlaceBid_Concurrent(t *testing.T) {
	logger := zap.NewNop()

	store := &bidRaceStore{
		auction: model.Auction{
			ID:           5,
			VehicleID:    10,
			CurrentPrice: 10_000_000,
			Status:       model.AuctionStatusActive,
			StartTime:    time.Now().Add(-time.Hour),
			EndTime:      time.Now().Add(time.Hour),
			Vehicle:      model.Vehicle{ID: 10, SellerID: 7},
		},
	}

	mockNotifications := &mocks.NotificationService{}
	mockNotifications.On("RecordOutbid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()

	svc := service.NewBidService(&fakeRaceAuctionRepo{store: store}, &fakeRaceBidRepo{store: store},
		&fakeRaceDepositRepo{}, &fakeRaceTxManager{}, mockNotifications, service.NewMaskedDirectory(),
		testConfig(), logger)

	const bidders = 20
	var wg sync.WaitGroup
	var accepted sync.Map

	for i := 0; i < bidders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			amount := 10_000_000 + int64(n+1)*100_000
			resp, err := svc.PlaceBid(context.Background(), service.PlaceBidCommand{
				AuctionID: 5,
				UserID:    int64(100 + n),
				Amount:    amount,
			})
			if err == nil {
				accepted.Store(amount, resp)
			}
		}(i)
	}

	wg.Wait()

	acceptedCount := 0
	var maxAccepted int64
	accepted.Range(func(key, value any) bool {
		acceptedCount++
		if amount := key.(int64); amount > maxAccepted {
			maxAccepted = amount
		}
		return true
	})

	// At least the highest offer always clears, and every accepted bid
	// must have raised the price by the full increment.
	assert.GreaterOrEqual(t, acceptedCount, 1)
	assert.Equal(t, maxAccepted, store.auction.CurrentPrice)
	assert.Equal(t, acceptedCount, store.auction.TotalBids)
	assert.Len(t, store.bids, acceptedCount)

	previous := int64(10_000_000)
	for _, record := range store.bids {
		assert.GreaterOrEqual(t, record.BidAmount, previous+100_000)
		previous = record.BidAmount
	}
}
