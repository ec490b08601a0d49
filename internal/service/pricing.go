package service

import (
	"github.com/shopkit/cart-service/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DiscountThreshold is the yearly revenue (inclusive) at which a
	// customer becomes VIP.
	DiscountThreshold = 1000.0

	// MinPromoStock is the stock level (inclusive) a Promo product needs
	// to be discountable.
	MinPromoStock = 5
)

// discountRate is the multiplier applied to the unit price of an eligible
// line (10% off).
var discountRate = decimal.NewFromFloat(0.90)

// vipCustomers returns the set of customers whose yearly revenue meets the
// threshold. Pure and deterministic.
func vipCustomers(revenue map[string]float64) map[string]struct{} {
	vips := make(map[string]struct{})
	for customerID, total := range revenue {
		if total >= DiscountThreshold {
			vips[customerID] = struct{}{}
		}
	}
	return vips
}

// discountable reports whether a product can carry the loyalty discount at
// all, independent of the customer.
func discountable(p domain.Product) bool {
	return p.Category == domain.CategoryPromo && p.Stock >= MinPromoStock
}

// priceCart joins cart lines with the catalog and applies the discount rule
// per line. Lines referencing unknown products are skipped, not errors.
//
// Rounding happens at the line level before summation so the totals match
// the per-line prices a customer sees. Keep that order.
func priceCart(items []domain.CartItem, products map[string]domain.Product, vip bool) domain.AnnotatedCart {
	annotated := make([]domain.AnnotatedItem, 0, len(items))

	subtotal := decimal.Zero
	subtotalDiscounted := decimal.Zero
	totalSavings := decimal.Zero

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}

		unit := decimal.NewFromFloat(product.Price)
		qty := decimal.NewFromInt(int64(item.Quantity))
		lineTotal := unit.Mul(qty).Round(2)

		discountedUnit := unit
		lineTotalDiscounted := lineTotal
		savings := decimal.Zero
		rabatt := false

		if vip && discountable(product) {
			discountedUnit = unit.Mul(discountRate).Round(2)
			lineTotalDiscounted = discountedUnit.Mul(qty).Round(2)
			savings = lineTotal.Sub(lineTotalDiscounted).Round(2)
			rabatt = true
		}

		subtotal = subtotal.Add(lineTotal)
		subtotalDiscounted = subtotalDiscounted.Add(lineTotalDiscounted)
		totalSavings = totalSavings.Add(savings)

		annotated = append(annotated, domain.AnnotatedItem{
			ProductID:           item.ProductID,
			Name:                product.Name,
			Category:            product.Category,
			UnitPrice:           product.Price,
			Quantity:            item.Quantity,
			LineTotal:           lineTotal.InexactFloat64(),
			Rabatt:              rabatt,
			DiscountedUnitPrice: discountedUnit.InexactFloat64(),
			LineTotalDiscounted: lineTotalDiscounted.InexactFloat64(),
			SavingsTotal:        savings.InexactFloat64(),
		})
	}

	return domain.AnnotatedCart{
		Items:              annotated,
		Subtotal:           subtotal.Round(2).InexactFloat64(),
		SubtotalDiscounted: subtotalDiscounted.Round(2).InexactFloat64(),
		TotalSavings:       totalSavings.Round(2).InexactFloat64(),
	}
}

// productIndex builds an identifier-keyed map so per-line lookups are O(1).
func productIndex(products []domain.Product) map[string]domain.Product {
	index := make(map[string]domain.Product, len(products))
	for _, p := range products {
		index[p.ProductID] = p
	}
	return index
}
