package pricing

// Label is the categorical price recommendation.
type Label string

const (
	RaisePrice  Label = "Raise Price"
	LowerPrice  Label = "Lower Price"
	Competitive Label = "Competitive"
	// LooksGood replaces Competitive in the single-product flow.
	LooksGood Label = "Looks Good"
)

// Deadband is the symmetric tolerance, in dollars, within which the current
// price is considered fine as-is.
const Deadband = 5.0

// Classify compares a reference price (model prediction or market-derived
// estimate) against the current listed price. The band edges are inclusive:
// a reference exactly Deadband away still reads as Competitive.
func Classify(reference, current float64) Label {
	switch {
	case reference > current+Deadband:
		return RaisePrice
	case reference < current-Deadband:
		return LowerPrice
	default:
		return Competitive
	}
}

// ClassifySingle applies the same deadband but reports the single-product
// wording for the in-band case.
func ClassifySingle(reference, current float64) Label {
	if label := Classify(reference, current); label != Competitive {
		return label
	}
	return LooksGood
}

// MetricLabel renders the label as a prometheus-safe value.
func (l Label) MetricLabel() string {
	switch l {
	case RaisePrice:
		return "raise_price"
	case LowerPrice:
		return "lower_price"
	case Competitive:
		return "competitive"
	case LooksGood:
		return "looks_good"
	}
	return "unknown"
}
