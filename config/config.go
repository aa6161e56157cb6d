package config

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// CheckoutConfig holds everything the reservation and finalize operations
// need; it is passed into them explicitly instead of being looked up from
// inside the engine.
type CheckoutConfig struct {
	// TTL is how long a checkout reserves inventory before it auto-releases.
	TTL time.Duration
	// SweepInterval is the cadence of the background expiry sweeper.
	SweepInterval time.Duration
	// MinimumOrderAmount and DeliveryCharge are fallbacks used when no
	// StoreSettings row has been configured yet.
	MinimumOrderAmount decimal.Decimal
	DeliveryCharge     decimal.Decimal
	// MerchantVPA is the UPI address embedded in generated payment data.
	MerchantVPA string
}

type Config struct {
	Port     string
	Checkout CheckoutConfig
}

// Load reads configuration from environment variables with sane defaults.
// Call godotenv.Load before this if a .env file is used.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("checkout.expiry_hours", 2)
	v.SetDefault("checkout.sweep_interval_minutes", 10)
	v.SetDefault("checkout.minimum_order_amount", "0")
	v.SetDefault("checkout.delivery_charge", "0")
	v.SetDefault("checkout.merchant_vpa", "merchant@upi")

	minAmount, err := decimal.NewFromString(v.GetString("checkout.minimum_order_amount"))
	if err != nil {
		return nil, err
	}
	delivery, err := decimal.NewFromString(v.GetString("checkout.delivery_charge"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port: v.GetString("port"),
		Checkout: CheckoutConfig{
			TTL:                time.Duration(v.GetInt("checkout.expiry_hours")) * time.Hour,
			SweepInterval:      time.Duration(v.GetInt("checkout.sweep_interval_minutes")) * time.Minute,
			MinimumOrderAmount: minAmount,
			DeliveryCharge:     delivery,
			MerchantVPA:        v.GetString("checkout.merchant_vpa"),
		},
	}, nil
}
