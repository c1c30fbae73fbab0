package config

import (
	"fmt"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/pkg/mq"
	"github.com/otomarket/auction-services/auctiongateway/pkg/mysql"
	"github.com/otomarket/auction-services/auctiongateway/pkg/notifier"
	"github.com/otomarket/auction-services/auctiongateway/pkg/paymentprovider"
	"github.com/spf13/viper"
)

type Config struct {
	API             API                    `mapstructure:"api"`
	Database        mysql.Config           `mapstructure:"database"`
	RabbitMQ        mq.Config              `mapstructure:"rabbitmq"`
	PaymentProvider paymentprovider.Config `mapstructure:"paymentprovider"`
	Notifier        notifier.Config        `mapstructure:"notifier"`
	Auction         Auction                `mapstructure:"auction"`
	Worker          Worker                 `mapstructure:"worker"`
}

type API struct {
	Port string `mapstructure:"port"`
}

// Auction holds the operator-tunable auction parameters. Defaults match
// the marketplace settings store.
type Auction struct {
	MinStartingPrice     int64         `mapstructure:"min_starting_price"`
	MinDurationHours     int           `mapstructure:"min_duration_hours"`
	MaxDurationHours     int           `mapstructure:"max_duration_hours"`
	DefaultDurationHours int           `mapstructure:"default_duration_hours"`
	DepositPercentage    int           `mapstructure:"deposit_percentage"`
	PaymentDeadlineHours int           `mapstructure:"payment_deadline_hours"`
	MinBidIncrement      int64         `mapstructure:"min_bid_increment"`
	ExtendWindow         time.Duration `mapstructure:"extend_window"`
	ExtendBy             time.Duration `mapstructure:"extend_by"`
	BidRatePerMinute     int           `mapstructure:"bid_rate_per_minute"`
	BidBurst             int           `mapstructure:"bid_burst"`
}

type Worker struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	setDefaults()

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("auction.min_starting_price", 1_000_000)
	viper.SetDefault("auction.min_duration_hours", 12)
	viper.SetDefault("auction.max_duration_hours", 168)
	viper.SetDefault("auction.default_duration_hours", 24)
	viper.SetDefault("auction.deposit_percentage", 5)
	viper.SetDefault("auction.payment_deadline_hours", 24)
	viper.SetDefault("auction.min_bid_increment", 100_000)
	viper.SetDefault("auction.extend_window", 5*time.Minute)
	viper.SetDefault("auction.extend_by", 10*time.Minute)
	viper.SetDefault("auction.bid_rate_per_minute", 30)
	viper.SetDefault("auction.bid_burst", 5)
	viper.SetDefault("worker.poll_interval", 30*time.Second)
	viper.SetDefault("worker.batch_size", 100)
}
