package scoring

import "github.com/walletlabs/zscore/internal/core/domain"

// UserTags derives qualitative behavior labels from the extracted features
// and the overall wallet score. It never fails; at worst the list is partial.
func (m *Model) UserTags(f domain.CategoryFeatures, overallScore float64) []string {
	var tags []string

	switch {
	case f.TotalDepositUSD >= m.volume.Whale:
		tags = append(tags, "Whale LP")
	case f.TotalDepositUSD >= m.volume.High:
		tags = append(tags, "Large LP")
	}

	switch {
	case f.TotalSwapVolume >= m.volume.Whale:
		tags = append(tags, "Whale Trader")
	case f.TotalSwapVolume >= m.volume.High:
		tags = append(tags, "Active Trader")
	}

	switch {
	case f.AvgHoldTimeDays >= m.holding.Hodl:
		tags = append(tags, "HODLer")
	case f.AvgHoldTimeDays >= m.holding.Long:
		tags = append(tags, "Long-term LP")
	}

	if f.NumDeposits >= m.frequency.VeryHigh {
		tags = append(tags, "Frequent LP")
	}
	if f.NumSwaps >= m.frequency.VeryHigh {
		tags = append(tags, "Frequent Trader")
	}

	switch {
	case overallScore >= 800:
		tags = append(tags, "Elite User")
	case overallScore >= 600:
		tags = append(tags, "Premium User")
	case overallScore >= 400:
		tags = append(tags, "Regular User")
	default:
		tags = append(tags, "New User")
	}

	return tags
}
