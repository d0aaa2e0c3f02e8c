package entity

// AssetDetails holds the provider's description of a fungible asset, including its
// last known market prices. Prices stay decimal strings as delivered.
type AssetDetails struct {
	AssetID   string `json:"asset_id"`
	ChainID   string `json:"chain_id"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	IconURL   string `json:"icon_url"`
	PriceUSD  string `json:"price_usd"`
	PriceBTC  string `json:"price_btc"`
	ChangeUSD string `json:"change_usd"`
	ChangeBTC string `json:"change_btc"`
}

// PriceCache maps an asset id to its last fetched details.
type PriceCache map[string]AssetDetails

// Clone returns a shallow copy safe to hand to readers.
func (c PriceCache) Clone() PriceCache {
	out := make(PriceCache, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
