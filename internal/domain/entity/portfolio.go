package entity

import "time"

// PortfolioSnapshot is the published result of one balance refresh.
type PortfolioSnapshot struct {
	Balances        []AssetBalance `json:"balances"`
	TotalUSDBalance float64        `json:"totalUSDBalance"`
	TotalBTCBalance float64        `json:"totalBTCBalance"`
	RefreshedAt     time.Time      `json:"refreshedAt"`
}
