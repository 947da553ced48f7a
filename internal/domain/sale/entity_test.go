package sale

import (
	"encoding/json"
	"testing"
)

// The alert sweep locates a product's last sale with a jsonb containment
// match keyed on "product_id", so the stored snapshot must carry that key
// with the plain integral id.
func TestSaleItemsValueKeepsProductIDKey(t *testing.T) {
	items := SaleItems{
		{ProductID: 7, ProductName: "Iced Tea", Quantity: 2, UnitPrice: 1.20, Subtotal: 2.40},
	}

	v, err := items.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}

	raw, ok := v.([]byte)
	if !ok {
		t.Fatalf("Value() returned %T, want []byte", v)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("marshaled items are not a JSON array: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 item, got %d", len(decoded))
	}
	id, ok := decoded[0]["product_id"]
	if !ok {
		t.Fatalf("marshaled item missing product_id key: %s", raw)
	}
	if id != float64(7) {
		t.Fatalf("product_id rendered as %v, want 7", id)
	}
}

func TestSaleItemsScanRoundTrip(t *testing.T) {
	items := SaleItems{
		{ProductID: 1, ProductName: "Mineral Water", Quantity: 3, UnitPrice: 0.80, Subtotal: 2.40},
		{ProductID: 2, ProductName: "Chips", Quantity: 1, UnitPrice: 1.50, Subtotal: 1.50},
	}

	v, err := items.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}

	var decoded SaleItems
	if err := decoded.Scan(v); err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(decoded))
	}
	if decoded[0].ProductID != 1 || decoded[1].Quantity != 1 {
		t.Fatalf("round trip corrupted items: %+v", decoded)
	}
}
