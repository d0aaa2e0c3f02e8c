package mixinuri

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"mixin_wallet/internal/domain/entity"

	"github.com/stretchr/testify/require"
)

const (
	botID   = "a1ce2967-a534-417d-bf12-c86571e4eeac"
	assetID = "4d8c508b-91c5-375b-92b0-ee702ed2dac5"
	traceID = "6f1bd3a3-3f7a-4e1b-9f3c-1b2f7d1f4c11"
)

func newTestBuilder() *Builder {
	return NewBuilder(botID, "https://app.example.com", "https://mixin.one/pay/", "mixin://send")
}

func TestPaymentURI(t *testing.T) {
	uri, err := newTestBuilder().PaymentURI(entity.PaymentRequest{
		AssetID: assetID,
		Amount:  "10.50",
		Memo:    "U1B8TA",
		TraceID: traceID,
	})
	require.NoError(t, err)

	u, err := url.Parse(uri)
	require.NoError(t, err)
	require.Equal(t, "https", u.Scheme)
	require.Equal(t, "mixin.one", u.Host)
	require.Equal(t, "/pay/"+botID, u.Path)
	q := u.Query()
	require.Equal(t, assetID, q.Get("asset"))
	require.Equal(t, "10.5", q.Get("amount"))
	require.Equal(t, "U1B8TA", q.Get("memo"))
	require.Equal(t, traceID, q.Get("trace"))
}

func TestPaymentURI_OmitsEmptyMemo(t *testing.T) {
	uri, err := newTestBuilder().PaymentURI(entity.PaymentRequest{AssetID: assetID, Amount: "1", TraceID: traceID})
	require.NoError(t, err)
	require.NotContains(t, uri, "memo=")
}

func TestPaymentURI_Invalid(t *testing.T) {
	valid := entity.PaymentRequest{AssetID: assetID, Amount: "1", TraceID: traceID}
	cases := map[string]entity.PaymentRequest{
		"asset":  {AssetID: "nope", Amount: valid.Amount, TraceID: valid.TraceID},
		"trace":  {AssetID: valid.AssetID, Amount: valid.Amount, TraceID: "nope"},
		"amount": {AssetID: valid.AssetID, Amount: "-1", TraceID: valid.TraceID},
	}
	for name, req := range cases {
		_, err := newTestBuilder().PaymentURI(req)
		require.ErrorIs(t, err, entity.ErrInvalidPayment, name)
	}

	_, err := NewBuilder("", "", "https://mixin.one/pay", "mixin://send").PaymentURI(valid)
	require.ErrorIs(t, err, entity.ErrInvalidPayment)
}

func TestShareURI(t *testing.T) {
	uri, err := newTestBuilder().ShareURI(entity.ShareCard{
		Action:      "/trade/BTC-USDT",
		Title:       "Trade",
		Description: "Spot",
		IconURL:     "https://app.example.com/icon.png",
	})
	require.NoError(t, err)

	prefix := "mixin://send?category=app_card&data="
	require.True(t, strings.HasPrefix(uri, prefix))
	escaped := strings.TrimPrefix(uri, prefix)
	encoded, err := url.QueryUnescape(escaped)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	var card entity.ShareCard
	require.NoError(t, json.Unmarshal(raw, &card))
	require.Equal(t, entity.ShareCard{
		Action:      "https://app.example.com/trade/BTC-USDT",
		AppID:       botID,
		Description: "Spot",
		IconURL:     "https://app.example.com/icon.png",
		Title:       "Trade",
	}, card)
}
