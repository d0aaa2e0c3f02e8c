package port

import "mixin_wallet/internal/domain/entity"

// URIBuilder renders companion wallet deep links.
type URIBuilder interface {
	PaymentURI(req entity.PaymentRequest) (string, error)
	ShareURI(card entity.ShareCard) (string, error)
}

// SymbolDecoder maps a trading pair symbol to its base and quote asset ids.
// Empty ids mean the symbol is unknown.
type SymbolDecoder interface {
	Decode(symbol string) (firstAssetID, secondAssetID string)
}
