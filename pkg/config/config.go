package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port              string `envconfig:"PORT" default:"8080"`
	ShopDBPath        string `envconfig:"SHOP_DB_PATH" default:"shop_data.db"`
	CRMDBPath         string `envconfig:"CRM_DB_PATH" default:"crm_data.db"`
	CartFile          string `envconfig:"CART_FILE" default:"data/shopping_cart.json"`
	DefaultCustomerID string `envconfig:"DEFAULT_CUSTOMER_ID" default:"C1001"`
	RevenueYear       int    `envconfig:"REVENUE_YEAR" default:"2025"`
	AllowOrigins      string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:4321"`
	EventsEnabled     bool   `envconfig:"EVENTS_ENABLED" default:"false"`
	KafkaBrokers      string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	CartEventsTopic   string `envconfig:"CART_EVENTS_TOPIC" default:"cart-events"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
