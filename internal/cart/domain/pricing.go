package domain

// Base is the starting point of a price computation, resolved from the
// catalog or falling back to the house custom base.
type Base struct {
	ID    string
	Name  string
	Price int64
}

const DefaultBasePrice = 120

func DefaultBase() Base {
	return Base{ID: "custom-base", Name: "Custom Base", Price: DefaultBasePrice}
}

var sizeSurcharge = map[Size]int64{
	SizeSmall:  0,
	SizeMedium: 20,
	SizeLarge:  40,
}

var extraSurcharge = map[string]int64{
	"Cream Crest": 20,
	"Pearl Pop":   25,
	"Extra Shot":  30,
	"Cinnamon":    5,
}

// ComputePrice is the pure pricing function: base price plus size and extras
// surcharges. Unknown sizes and extras contribute nothing, so new options on
// the form cannot break old pricing. Never negative for a non-negative base.
func ComputePrice(base Base, size Size, extras []string) int64 {
	price := base.Price
	if price < 0 {
		price = DefaultBasePrice
	}
	price += sizeSurcharge[size]
	for _, e := range extras {
		price += extraSurcharge[e]
	}
	return price
}
