package entity

// MixinErrorBody is the error envelope the Mixin API returns, often alongside a
// 2xx HTTP status.
type MixinErrorBody struct {
	Status      int    `json:"status"`
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// MixinAsset is the raw asset object. Fields the application does not read are omitted.
type MixinAsset struct {
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
