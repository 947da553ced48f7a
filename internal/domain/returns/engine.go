// internal/domain/returns/engine.go
package returns

import (
	"math"
	"time"

	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/pkg/apperror"
)

// soldLine is the per-product view of a sale's item snapshot.
type soldLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// round2 rounds to two decimal places, matching money precision everywhere
// refund amounts are computed.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// withinReturnWindow reports whether now is still inside the return window.
// The window counts whole elapsed days; a return exactly at the window-day
// boundary is still allowed.
func withinReturnWindow(created, now time.Time, windowDays int) bool {
	elapsedDays := int(now.Sub(created).Hours() / 24)
	return elapsedDays <= windowDays
}

// indexSaleItems builds a per-product lookup of sold quantity and unit price
// from the sale's stored item snapshot. A snapshot with no lines, a zero
// product id or a non-positive quantity is structurally malformed.
func indexSaleItems(items sale.SaleItems) (map[uint]soldLine, error) {
	if len(items) == 0 {
		return nil, apperror.InvalidFormat("sale item snapshot is malformed")
	}

	index := make(map[uint]soldLine, len(items))
	for _, it := range items {
		if it.ProductID == 0 || it.Quantity <= 0 {
			return nil, apperror.InvalidFormat("sale item snapshot is malformed")
		}
		line := index[it.ProductID]
		line.Name = it.ProductName
		line.Quantity += it.Quantity
		line.UnitPrice = it.UnitPrice
		index[it.ProductID] = line
	}
	return index, nil
}

// sumPriorReturns totals the already-returned quantity per product across all
// prior returns of one sale.
func sumPriorReturns(prior []Return) map[uint]int {
	sums := make(map[uint]int)
	for _, r := range prior {
		for _, it := range r.ItemsReturned {
			sums[it.ProductID] += it.Quantity
		}
	}
	return sums
}

// validateReturnedItems checks every requested line against the sale snapshot
// and prior returns, and accumulates the refund subtotal using the sale's
// recorded unit prices. Client-supplied prices are ignored so refund amounts
// cannot be manipulated.
func validateReturnedItems(requested ReturnItems, sold map[uint]soldLine, prior map[uint]int) (float64, error) {
	var subtotal float64
	for _, it := range requested {
		line, ok := sold[it.ProductID]
		if !ok {
			return 0, apperror.InvalidRequest("product %d is not part of the sale", it.ProductID)
		}
		if it.Quantity <= 0 {
			return 0, apperror.InvalidRequest("invalid quantity for %s", line.Name)
		}
		if it.Quantity+prior[it.ProductID] > line.Quantity {
			return 0, apperror.InvalidRequest("invalid quantity for %s", line.Name)
		}
		subtotal += line.UnitPrice * float64(it.Quantity)
	}
	return subtotal, nil
}

// refundTotals computes the tax-proportional refund amounts. The tax refund
// is allocated by the sale's tax-to-subtotal ratio (zero if the sale subtotal
// is zero). Exchanges net no cash refund: only inventory moves.
func refundTotals(subtotalRefund, saleTax, saleSubtotal float64, action ReturnAction) (float64, float64, float64) {
	if action == ActionExchange {
		return 0, 0, 0
	}

	ratio := 0.0
	if saleSubtotal > 0 {
		ratio = saleTax / saleSubtotal
	}

	sub := round2(subtotalRefund)
	tax := round2(subtotalRefund * ratio)
	total := round2(subtotalRefund + tax)
	return sub, tax, total
}
