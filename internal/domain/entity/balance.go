package entity

// AssetBalance is the summed amount of one asset together with its valuation.
// USDBalance and Details are only set once the balance has been valuated.
type AssetBalance struct {
	AssetID    string        `json:"asset_id"`
	Balance    float64       `json:"balance"`
	USDBalance float64       `json:"usdBalance"`
	Details    *AssetDetails `json:"details,omitempty"`
}

// BalanceSet is a group of per-asset balances that remembers the order in which
// assets were first seen.
type BalanceSet struct {
	order []string
	byID  map[string]*AssetBalance
}

// NewBalanceSet returns an empty set.
func NewBalanceSet() *BalanceSet {
	return &BalanceSet{byID: make(map[string]*AssetBalance)}
}

// Entry returns the balance for assetID, creating a zero entry on first sight.
func (s *BalanceSet) Entry(assetID string) *AssetBalance {
	if b, ok := s.byID[assetID]; ok {
		return b
	}
	b := &AssetBalance{AssetID: assetID}
	s.byID[assetID] = b
	s.order = append(s.order, assetID)
	return b
}

// Get returns the balance for assetID if present.
func (s *BalanceSet) Get(assetID string) (*AssetBalance, bool) {
	b, ok := s.byID[assetID]
	return b, ok
}

// Len reports the number of distinct assets.
func (s *BalanceSet) Len() int {
	return len(s.order)
}

// AssetIDs returns asset ids in first-seen order.
func (s *BalanceSet) AssetIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Balances returns the entries in first-seen order.
func (s *BalanceSet) Balances() []*AssetBalance {
	out := make([]*AssetBalance, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
