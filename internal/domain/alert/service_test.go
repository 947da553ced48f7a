package alert

import (
	"encoding/json"
	"testing"

	"github.com/your-org/pos-backend/internal/domain/sale"
)

// jsonbContains mirrors Postgres jsonb array containment for the document
// shape used by the last-sale lookup: every object in the document must be a
// subset of some element of the stored array.
func jsonbContains(stored, doc []map[string]interface{}) bool {
	for _, want := range doc {
		matched := false
		for _, item := range stored {
			subset := true
			for k, v := range want {
				if item[k] != v {
					subset = false
					break
				}
			}
			if subset {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// The last-sale lookup relies on jsonb containment between the stored item
// snapshot and the generated document, which only depends on the
// "product_id" key and value, never on whitespace or key order in the
// rendered text.
func TestItemsContainingProductMatchesSnapshot(t *testing.T) {
	items := sale.SaleItems{
		{ProductID: 1, ProductName: "Mineral Water", Quantity: 3, UnitPrice: 0.80, Subtotal: 2.40},
		{ProductID: 7, ProductName: "Iced Tea", Quantity: 2, UnitPrice: 1.20, Subtotal: 2.40},
	}

	v, err := items.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	var stored []map[string]interface{}
	if err := json.Unmarshal(v.([]byte), &stored); err != nil {
		t.Fatalf("stored snapshot is not a JSON array: %v", err)
	}

	var doc []map[string]interface{}
	if err := json.Unmarshal([]byte(itemsContainingProduct(7)), &doc); err != nil {
		t.Fatalf("containment document is not valid JSON: %v", err)
	}
	if len(doc) != 1 {
		t.Fatalf("containment document should hold exactly one object, got %d", len(doc))
	}

	if !jsonbContains(stored, doc) {
		t.Fatalf("snapshot %s does not contain %s", v.([]byte), itemsContainingProduct(7))
	}

	var miss []map[string]interface{}
	if err := json.Unmarshal([]byte(itemsContainingProduct(9)), &miss); err != nil {
		t.Fatalf("containment document is not valid JSON: %v", err)
	}
	if jsonbContains(stored, miss) {
		t.Fatal("snapshot should not match a document for an unsold product")
	}
}
