// Package config resolves service configuration from the environment at
// startup. Each service gets its own struct; nothing here is mutated after
// Load returns.
package config

import (
	"os"
	"time"
)

type Gateway struct {
	Addr          string
	ServiceName   string
	Env           string
	OrdersURL     string
	PaymentsURL   string
	InventoryURL  string
	ProxyTimeout  time.Duration
	HealthTimeout time.Duration
}

func LoadGateway() Gateway {
	return Gateway{
		Addr:          ":" + getenv("PORT", "5000"),
		ServiceName:   getenv("SERVICE_NAME", "api-gateway"),
		Env:           getenv("ENV", "dev"),
		OrdersURL:     getenv("ORDERS_SERVICE_URL", "http://localhost:5001"),
		PaymentsURL:   getenv("PAYMENTS_SERVICE_URL", "http://localhost:5002"),
		InventoryURL:  getenv("INVENTORY_SERVICE_URL", "http://localhost:5003"),
		ProxyTimeout:  15 * time.Second,
		HealthTimeout: 3 * time.Second,
	}
}

type Orders struct {
	Addr         string
	ServiceName  string
	Env          string
	InventoryURL string
	PaymentsURL  string
}

func LoadOrders() Orders {
	return Orders{
		Addr:         ":" + getenv("PORT", "5001"),
		ServiceName:  getenv("SERVICE_NAME", "orders-service"),
		Env:          getenv("ENV", "dev"),
		InventoryURL: getenv("INVENTORY_SERVICE_URL", "http://localhost:5003"),
		PaymentsURL:  getenv("PAYMENTS_SERVICE_URL", "http://localhost:5002"),
	}
}

type Payments struct {
	Addr        string
	ServiceName string
	Env         string
	DBPath      string
	ApproveRate float64
}

func LoadPayments() Payments {
	return Payments{
		Addr:        ":" + getenv("PORT", "5002"),
		ServiceName: getenv("SERVICE_NAME", "payments-service"),
		Env:         getenv("ENV", "dev"),
		DBPath:      getenv("PAYMENTS_DB_PATH", "payments.db"),
		ApproveRate: 0.9,
	}
}

type Inventory struct {
	Addr        string
	ServiceName string
	Env         string
}

func LoadInventory() Inventory {
	return Inventory{
		Addr:        ":" + getenv("PORT", "5003"),
		ServiceName: getenv("SERVICE_NAME", "inventory-service"),
		Env:         getenv("ENV", "dev"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
