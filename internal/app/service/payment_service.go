package service

import (
	"context"
	"fmt"

	"mixin_wallet/internal/app/port"
	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/pkg/memo"
)

// PaymentServiceImpl implements port.PaymentService.
type PaymentServiceImpl struct {
	symbols port.SymbolDecoder
	uris    port.URIBuilder
	logger  port.Logger
}

// NewPaymentService creates a payment service.
func NewPaymentService(symbols port.SymbolDecoder, uris port.URIBuilder, l port.Logger) *PaymentServiceImpl {
	return &PaymentServiceImpl{symbols: symbols, uris: uris, logger: l}
}

// SpotPay builds the payment URI funding a spot order. Buy orders pay with the quote
// asset and sell orders with the base asset.
func (s *PaymentServiceImpl) SpotPay(_ context.Context, order entity.SpotOrder) (string, error) {
	if order.Exchange == "" || order.Symbol == "" || order.Amount == "" || order.Trace == "" {
		s.logger.Warn("Spot order is missing required fields",
			"exchange", order.Exchange, "symbol", order.Symbol, "amount", order.Amount, "trace", order.Trace)
		return "", entity.ErrInvalidSpotOrder
	}
	price := order.Price
	if price == "" {
		price = "0"
	}

	first, second := s.symbols.Decode(order.Symbol)
	if first == "" || second == "" {
		s.logger.Warn("Unknown trading pair symbol", "symbol", order.Symbol)
		return "", fmt.Errorf("%w: %s", entity.ErrInvalidSymbol, order.Symbol)
	}

	assetID := first
	if order.Buy {
		assetID = second
	}
	encoded := memo.EncodeSpot(memo.SpotIntent{
		Limit:    order.Limit,
		Buy:      order.Buy,
		Symbol:   order.Symbol,
		Price:    price,
		Exchange: order.Exchange,
	})

	uri, err := s.uris.PaymentURI(entity.PaymentRequest{
		AssetID: assetID,
		Amount:  order.Amount,
		Memo:    encoded,
		TraceID: order.Trace,
	})
	if err != nil {
		s.logger.Warn("Failed to build spot payment URI", "symbol", order.Symbol, "error", err)
		return "", err
	}
	s.logger.Debug("Built spot payment URI", "symbol", order.Symbol, "buy", order.Buy, "asset_id", assetID)
	return uri, nil
}

// Pay builds a plain payment URI.
func (s *PaymentServiceImpl) Pay(_ context.Context, req entity.PaymentRequest) (string, error) {
	uri, err := s.uris.PaymentURI(req)
	if err != nil {
		s.logger.Warn("Failed to build payment URI", "asset_id", req.AssetID, "error", err)
		return "", err
	}
	return uri, nil
}

// Share builds an app card share URI pointing at url inside the application.
func (s *PaymentServiceImpl) Share(_ context.Context, url, title, description, iconURL string) (string, error) {
	uri, err := s.uris.ShareURI(entity.ShareCard{
		Action:      url,
		Description: description,
		IconURL:     iconURL,
		Title:       title,
	})
	if err != nil {
		s.logger.Warn("Failed to build share URI", "url", url, "error", err)
		return "", err
	}
	return uri, nil
}
