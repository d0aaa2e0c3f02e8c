package entity

// Output is one unspent (or spent) fund entry held by a set of members, as returned by
// the provider's safe outputs endpoint. Only AssetID and Amount are read by the balance
// pipeline; the rest is carried for callers that want it.
type Output struct {
	OutputID        string `json:"output_id"`
	TransactionHash string `json:"transaction_hash"`
	OutputIndex     int    `json:"output_index"`
	AssetID         string `json:"asset_id"`
	Amount          string `json:"amount"`
	State           string `json:"state"`
	CreatedAt       string `json:"created_at"`
}

// OutputState filters safe outputs by spend state. The zero value requests every state.
type OutputState string

const (
	OutputStateAny     OutputState = ""
	OutputStateUnspent OutputState = "unspent"
	OutputStateSpent   OutputState = "spent"
)
