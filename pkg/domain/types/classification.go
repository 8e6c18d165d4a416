package types

// Classification is the qualitative label of an aggregated probability
type Classification string

const (
	ClassificationVeryLow  Classification = "very low"
	ClassificationLow      Classification = "low"
	ClassificationMedium   Classification = "medium"
	ClassificationHigh     Classification = "high"
	ClassificationVeryHigh Classification = "very high"
)

// AllClassifications returns all classifications from lowest to highest
func AllClassifications() []Classification {
	return []Classification{
		ClassificationVeryLow,
		ClassificationLow,
		ClassificationMedium,
		ClassificationHigh,
		ClassificationVeryHigh,
	}
}

// IsValid checks if the classification is valid
func (c Classification) IsValid() bool {
	switch c {
	case ClassificationVeryLow,
		ClassificationLow,
		ClassificationMedium,
		ClassificationHigh,
		ClassificationVeryHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the classification
func (c Classification) String() string {
	return string(c)
}
