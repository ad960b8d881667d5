package beacon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemVariation(t *testing.T) {
	tests := []struct {
		name     string
		purchase Purchase
		want     string
	}{
		{"not a gift", Purchase{PurchaseType: "checkout"}, "checkout"},
		{"gift", Purchase{PurchaseType: "checkout", Gift: true}, "checkout - Gift"},
		{"gift with empty type", Purchase{Gift: true}, " - Gift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, itemVariation(tt.purchase))
		})
	}
}

func TestEventRecord(t *testing.T) {
	t.Run("should produce empty properties for nil input", func(t *testing.T) {
		record := eventRecord("Cron", EventData{UUID: "u"})

		assert.NotNil(t, record.EventProperties)
		assert.Empty(t, record.EventProperties)
		assert.Nil(t, record.Revenue)
	})
}

func TestPurchaseRecord(t *testing.T) {
	t.Run("should not alias the purchase value", func(t *testing.T) {
		p := checkoutPurchase
		record := purchaseRecord(p)
		p.PurchaseValue = 100

		assert.Equal(t, 8.0, *record.Revenue)
	})

	t.Run("should exclude uuid and purchase value from properties", func(t *testing.T) {
		record := purchaseRecord(checkoutPurchase)

		assert.NotContains(t, record.EventProperties, "uuid")
		assert.NotContains(t, record.EventProperties, "purchaseValue")
		assert.Len(t, record.EventProperties, 6)
	})
}
