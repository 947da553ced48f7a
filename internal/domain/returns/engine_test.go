package returns

import (
	"testing"
	"time"

	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/pkg/apperror"
)

func TestWithinReturnWindow(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		now        time.Time
		windowDays int
		want       bool
	}{
		{"same day", created.Add(2 * time.Hour), 30, true},
		{"inside window", created.AddDate(0, 0, 15), 30, true},
		{"exactly at boundary", created.AddDate(0, 0, 30), 30, true},
		{"one day past boundary", created.AddDate(0, 0, 31), 30, false},
		{"just under boundary plus hours", created.Add(30*24*time.Hour + 23*time.Hour), 30, true},
		{"zero window same day", created.Add(5 * time.Hour), 0, true},
		{"zero window next day", created.AddDate(0, 0, 1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withinReturnWindow(created, tt.now, tt.windowDays)
			if got != tt.want {
				t.Fatalf("withinReturnWindow(%v, %d) = %v, want %v", tt.now, tt.windowDays, got, tt.want)
			}
		})
	}
}

func TestIndexSaleItems(t *testing.T) {
	t.Run("aggregates duplicate product lines", func(t *testing.T) {
		items := sale.SaleItems{
			{ProductID: 7, ProductName: "Iced Tea", Quantity: 2, UnitPrice: 1.20},
			{ProductID: 7, ProductName: "Iced Tea", Quantity: 3, UnitPrice: 1.20},
			{ProductID: 9, ProductName: "Chips", Quantity: 1, UnitPrice: 1.50},
		}

		index, err := indexSaleItems(items)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if index[7].Quantity != 5 {
			t.Fatalf("expected aggregated quantity 5, got %d", index[7].Quantity)
		}
		if index[9].UnitPrice != 1.50 {
			t.Fatalf("expected unit price 1.50, got %v", index[9].UnitPrice)
		}
	})

	malformed := []struct {
		name  string
		items sale.SaleItems
	}{
		{"empty snapshot", sale.SaleItems{}},
		{"nil snapshot", nil},
		{"zero product id", sale.SaleItems{{ProductID: 0, Quantity: 1, UnitPrice: 1}}},
		{"zero quantity", sale.SaleItems{{ProductID: 3, Quantity: 0, UnitPrice: 1}}},
		{"negative quantity", sale.SaleItems{{ProductID: 3, Quantity: -2, UnitPrice: 1}}},
	}

	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			_, err := indexSaleItems(tt.items)
			if err == nil {
				t.Fatal("expected error for malformed snapshot, got nil")
			}
			if apperror.KindOf(err) != apperror.KindInvalidFormat {
				t.Fatalf("expected invalid_format, got %s", apperror.KindOf(err))
			}
		})
	}
}

func TestSumPriorReturns(t *testing.T) {
	prior := []Return{
		{ItemsReturned: ReturnItems{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}},
		{ItemsReturned: ReturnItems{{ProductID: 1, Quantity: 3}}},
	}

	sums := sumPriorReturns(prior)
	if sums[1] != 5 {
		t.Fatalf("expected 5 prior units for product 1, got %d", sums[1])
	}
	if sums[2] != 1 {
		t.Fatalf("expected 1 prior unit for product 2, got %d", sums[2])
	}
	if sums[3] != 0 {
		t.Fatalf("expected 0 prior units for product 3, got %d", sums[3])
	}
}

func TestValidateReturnedItems(t *testing.T) {
	sold := map[uint]soldLine{
		1: {Name: "Mineral Water", Quantity: 10, UnitPrice: 0.80},
		2: {Name: "Chips", Quantity: 4, UnitPrice: 1.50},
	}

	t.Run("prices from sale snapshot", func(t *testing.T) {
		// Client-supplied prices are ignored
		requested := ReturnItems{
			{ProductID: 1, Quantity: 5, UnitPrice: 99.99},
			{ProductID: 2, Quantity: 2, UnitPrice: 0.01},
		}

		subtotal, err := validateReturnedItems(requested, sold, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := 5*0.80 + 2*1.50
		if subtotal != want {
			t.Fatalf("expected subtotal %v, got %v", want, subtotal)
		}
	})

	t.Run("over-return across prior returns", func(t *testing.T) {
		prior := map[uint]int{1: 4}
		requested := ReturnItems{{ProductID: 1, Quantity: 7}}

		_, err := validateReturnedItems(requested, sold, prior)
		if err == nil {
			t.Fatal("expected over-return to fail, got nil")
		}
		if apperror.KindOf(err) != apperror.KindInvalidRequest {
			t.Fatalf("expected invalid_request, got %s", apperror.KindOf(err))
		}
	})

	t.Run("prior returns exactly at limit", func(t *testing.T) {
		prior := map[uint]int{1: 4}
		requested := ReturnItems{{ProductID: 1, Quantity: 6}}

		if _, err := validateReturnedItems(requested, sold, prior); err != nil {
			t.Fatalf("expected return up to sold quantity to pass, got %v", err)
		}
	})

	t.Run("product not in sale", func(t *testing.T) {
		requested := ReturnItems{{ProductID: 42, Quantity: 1}}

		_, err := validateReturnedItems(requested, sold, nil)
		if err == nil {
			t.Fatal("expected error for product outside the sale, got nil")
		}
		if apperror.KindOf(err) != apperror.KindInvalidRequest {
			t.Fatalf("expected invalid_request, got %s", apperror.KindOf(err))
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		requested := ReturnItems{{ProductID: 1, Quantity: 0}}

		if _, err := validateReturnedItems(requested, sold, nil); err == nil {
			t.Fatal("expected error for zero quantity, got nil")
		}
	})
}

func TestRefundTotals(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     float64
		saleTax      float64
		saleSubtotal float64
		action       ReturnAction
		wantSub      float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name:     "proportional tax refund",
			subtotal: 20, saleTax: 16, saleSubtotal: 100,
			action:  ActionRefund,
			wantSub: 20, wantTax: 3.2, wantTotal: 23.2,
		},
		{
			name:     "credit note gets the same amounts",
			subtotal: 20, saleTax: 16, saleSubtotal: 100,
			action:  ActionCreditNote,
			wantSub: 20, wantTax: 3.2, wantTotal: 23.2,
		},
		{
			name:     "exchange nets zero cash",
			subtotal: 20, saleTax: 16, saleSubtotal: 100,
			action:  ActionExchange,
			wantSub: 0, wantTax: 0, wantTotal: 0,
		},
		{
			name:     "zero sale subtotal yields zero tax",
			subtotal: 15, saleTax: 3, saleSubtotal: 0,
			action:  ActionRefund,
			wantSub: 15, wantTax: 0, wantTotal: 15,
		},
		{
			name:     "untaxed sale",
			subtotal: 12.50, saleTax: 0, saleSubtotal: 50,
			action:  ActionRefund,
			wantSub: 12.5, wantTax: 0, wantTotal: 12.5,
		},
		{
			name:     "rounding to cents",
			subtotal: 33.33, saleTax: 10, saleSubtotal: 99.99,
			action:  ActionRefund,
			wantSub: 33.33, wantTax: 3.33, wantTotal: 36.66,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, tax, total := refundTotals(tt.subtotal, tt.saleTax, tt.saleSubtotal, tt.action)
			if sub != tt.wantSub {
				t.Fatalf("subtotal refund = %v, want %v", sub, tt.wantSub)
			}
			if tax != tt.wantTax {
				t.Fatalf("tax refund = %v, want %v", tax, tt.wantTax)
			}
			if total != tt.wantTotal {
				t.Fatalf("total refund = %v, want %v", total, tt.wantTotal)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.19999999, 3.2},
		{4.456, 4.46},
		{0, 0},
		{-1.005, -1},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Fatalf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
