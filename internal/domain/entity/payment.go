package entity

// SpotOrder describes a spot trade the user wants to fund with a payment.
type SpotOrder struct {
	Exchange string `json:"exchange"`
	Symbol   string `json:"symbol"`
	Limit    bool   `json:"limit"`
	Price    string `json:"price"`
	Buy      bool   `json:"buy"`
	Amount   string `json:"amount"`
	Trace    string `json:"trace"`
}

// PaymentRequest is a single transfer to the application's bot.
type PaymentRequest struct {
	AssetID string `json:"asset_id"`
	Amount  string `json:"amount"`
	Memo    string `json:"memo"`
	TraceID string `json:"trace_id"`
}

// ShareCard is the app card payload sent through the companion wallet's share scheme.
type ShareCard struct {
	Action      string `json:"action"`
	AppID       string `json:"app_id"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	Title       string `json:"title"`
}
