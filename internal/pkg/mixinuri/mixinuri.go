// Package mixinuri renders the deep links understood by the Mixin Messenger app.
package mixinuri

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/pkg/utils"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Builder implements port.URIBuilder for a single bot.
type Builder struct {
	botID       string
	appURL      string
	payBaseURL  string
	shareScheme string
}

// NewBuilder creates a Builder. payBaseURL is typically "https://mixin.one/pay" and
// shareScheme "mixin://send".
func NewBuilder(botID, appURL, payBaseURL, shareScheme string) *Builder {
	return &Builder{
		botID:       botID,
		appURL:      appURL,
		payBaseURL:  strings.TrimRight(payBaseURL, "/"),
		shareScheme: shareScheme,
	}
}

// PaymentURI builds the OneSafe payment link paying req to the bot.
func (b *Builder) PaymentURI(req entity.PaymentRequest) (string, error) {
	if _, err := uuid.Parse(b.botID); err != nil {
		return "", fmt.Errorf("%w: bot id %q: %v", entity.ErrInvalidPayment, b.botID, err)
	}
	if _, err := uuid.Parse(req.AssetID); err != nil {
		return "", fmt.Errorf("%w: asset id %q: %v", entity.ErrInvalidPayment, req.AssetID, err)
	}
	if _, err := uuid.Parse(req.TraceID); err != nil {
		return "", fmt.Errorf("%w: trace id %q: %v", entity.ErrInvalidPayment, req.TraceID, err)
	}
	amount, err := utils.NormalizeAmount(req.Amount)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrInvalidPayment, err)
	}

	q := url.Values{}
	q.Set("asset", req.AssetID)
	q.Set("amount", amount)
	if req.Memo != "" {
		q.Set("memo", req.Memo)
	}
	q.Set("trace", req.TraceID)
	return fmt.Sprintf("%s/%s?%s", b.payBaseURL, b.botID, q.Encode()), nil
}

// ShareURI builds the app card share link. card.Action is joined to the app URL
// and card.AppID defaults to the bot id.
func (b *Builder) ShareURI(card entity.ShareCard) (string, error) {
	card.Action = b.appURL + card.Action
	if card.AppID == "" {
		card.AppID = b.botID
	}
	data, err := json.Marshal(card)
	if err != nil {
		return "", fmt.Errorf("failed to encode share card: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("%s?category=app_card&data=%s", b.shareScheme, url.QueryEscape(encoded)), nil
}
