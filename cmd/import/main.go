package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopkit/cart-service/internal/domain"
	"github.com/shopkit/cart-service/internal/repository"
	"github.com/shopkit/cart-service/pkg/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// shopRecord mirrors one entry of the shop data export.
type shopRecord struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price"`
}

// crmRecord mirrors one customer of the CRM export, orders nested.
type crmRecord struct {
	CustomerID string `json:"customerId"`
	Orders     []struct {
		OrderID string  `json:"orderId"`
		Date    string  `json:"date"`
		Total   float64 `json:"total"`
	} `json:"orders"`
}

func main() {
	shopJSON := flag.String("shop", "data/shop_data.json", "path to shop data JSON")
	crmJSON := flag.String("crm", "data/crm_data.json", "path to CRM data JSON")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := importProducts(*shopJSON, cfg.ShopDBPath, logger); err != nil {
		logger.Fatal("Product import failed", zap.Error(err))
	}
	if err := importOrders(*crmJSON, cfg.CRMDBPath, logger); err != nil {
		logger.Fatal("Order import failed", zap.Error(err))
	}
}

// importProducts wipes and reloads the products table. Re-running the tool
// is idempotent.
func importProducts(jsonPath, dbPath string, logger *zap.Logger) error {
	var records []shopRecord
	if err := readJSON(jsonPath, &records); err != nil {
		return err
	}

	db, err := repository.OpenDB(dbPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		return fmt.Errorf("failed to migrate shop schema: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Product{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		for _, rec := range records {
			product := domain.Product{
				ProductID: rec.ProductID,
				Name:      rec.Name,
				Category:  rec.Category,
				Stock:     rec.Stock,
				Price:     rec.Price,
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to insert product %s: %w", rec.ProductID, err)
			}
		}
		logger.Info("Products imported", zap.Int("count", len(records)))
		return nil
	})
}

// importOrders wipes and reloads the orders table from the nested CRM export.
func importOrders(jsonPath, dbPath string, logger *zap.Logger) error {
	var records []crmRecord
	if err := readJSON(jsonPath, &records); err != nil {
		return err
	}

	db, err := repository.OpenDB(dbPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&domain.Order{}); err != nil {
		return fmt.Errorf("failed to migrate CRM schema: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Order{}).Error; err != nil {
			return fmt.Errorf("failed to clear orders: %w", err)
		}
		count := 0
		for _, customer := range records {
			for _, o := range customer.Orders {
				order := domain.Order{
					CustomerID: customer.CustomerID,
					OrderID:    o.OrderID,
					Date:       o.Date,
					Total:      o.Total,
				}
				if err := tx.Create(&order).Error; err != nil {
					return fmt.Errorf("failed to insert order %s: %w", o.OrderID, err)
				}
				count++
			}
		}
		logger.Info("Orders imported",
			zap.Int("customers", len(records)),
			zap.Int("orders", count))
		return nil
	})
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
