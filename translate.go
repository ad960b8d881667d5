package beacon

const (
	purchaseEventType = "purchase"
	commerceCategory  = "commerce"
	giftSuffix        = " - Gift"
)

// Keys reserved for routing; they never reach event_properties.
var strippedEventKeys = map[string]struct{}{
	"uuid":       {},
	"gaCategory": {},
	"gaLabel":    {},
}

func eventRecord(eventType string, data EventData) EventRecord {
	properties := make(map[string]any, len(data.Properties))
	for k, v := range data.Properties {
		if _, ok := strippedEventKeys[k]; ok {
			continue
		}
		properties[k] = v
	}

	return EventRecord{
		EventType:       eventType,
		UserID:          data.UUID,
		EventProperties: properties,
	}
}

// purchaseRecord forwards every purchase field except uuid and purchaseValue;
// the value becomes revenue.
func purchaseRecord(p Purchase) EventRecord {
	revenue := p.PurchaseValue
	return EventRecord{
		EventType: purchaseEventType,
		UserID:    p.UUID,
		EventProperties: map[string]any{
			"sku":           p.SKU,
			"paymentMethod": p.PaymentMethod,
			"itemPurchased": p.ItemPurchased,
			"purchaseType":  p.PurchaseType,
			"gift":          p.Gift,
			"quantity":      p.Quantity,
		},
		Revenue: &revenue,
	}
}

func itemVariation(p Purchase) string {
	if p.Gift {
		return p.PurchaseType + giftSuffix
	}
	return p.PurchaseType
}
