package scoring

// Fixed threshold tables used by the scoring model. These mirror the
// protocol-thresholds the metadata store serves externally, but the model
// deliberately does not read them from storage: scoring must stay a pure
// function of its input.

// VolumeThresholds are USD volume tiers.
type VolumeThresholds struct {
	Low    float64
	Medium float64
	High   float64
	Whale  float64
}

// FrequencyThresholds are transaction-count tiers.
type FrequencyThresholds struct {
	Low      int
	Medium   int
	High     int
	VeryHigh int
}

// HoldingThresholds are holding-time tiers in days.
type HoldingThresholds struct {
	Short  float64
	Medium float64
	Long   float64
	Hodl   float64
}

var (
	defaultVolumeThresholds = VolumeThresholds{
		Low:    100,
		Medium: 1_000,
		High:   10_000,
		Whale:  100_000,
	}

	defaultFrequencyThresholds = FrequencyThresholds{
		Low:      1,
		Medium:   5,
		High:     20,
		VeryHigh: 50,
	}

	defaultHoldingThresholds = HoldingThresholds{
		Short:  7,
		Medium: 30,
		Long:   90,
		Hodl:   365,
	}
)

// volumeBonus maps a USD volume to its tier bonus.
func volumeBonus(v float64, t VolumeThresholds) float64 {
	switch {
	case v >= t.Whale:
		return 300
	case v >= t.High:
		return 200
	case v >= t.Medium:
		return 150
	case v >= t.Low:
		return 100
	}
	return 0
}

// frequencyBonus maps a transaction count to its tier bonus.
func frequencyBonus(n int, t FrequencyThresholds) float64 {
	switch {
	case n >= t.VeryHigh:
		return 200
	case n >= t.High:
		return 150
	case n >= t.Medium:
		return 100
	case n >= t.Low:
		return 50
	}
	return 0
}

// holdingBonus maps an average hold time in days to its tier bonus.
func holdingBonus(days float64, t HoldingThresholds) float64 {
	switch {
	case days >= t.Hodl:
		return 200
	case days >= t.Long:
		return 150
	case days >= t.Medium:
		return 100
	case days >= t.Short:
		return 50
	}
	return 0
}

// diversityBonus rewards activity spread across distinct pools.
func diversityBonus(uniquePools int) float64 {
	switch {
	case uniquePools >= 5:
		return 100
	case uniquePools >= 3:
		return 50
	case uniquePools >= 1:
		return 25
	}
	return 0
}
