package memo

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeSpot(t *testing.T) {
	got := EncodeSpot(SpotIntent{Limit: true, Buy: false, Symbol: "BTC-USDT", Price: "30000", Exchange: "4swap"})
	raw, err := base64.RawURLEncoding.DecodeString(got)
	require.NoError(t, err)
	require.Equal(t, "SP|L|S|4swap|BTC-USDT|30000", string(raw))
}

func TestDecodeSpot_RoundTrip(t *testing.T) {
	in := SpotIntent{Limit: false, Buy: true, Symbol: "XIN/USDT", Price: "0", Exchange: "exinone"}
	out, err := DecodeSpot(EncodeSpot(in))
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecodeSpot_Malformed(t *testing.T) {
	for _, m := range []string{
		"!!!",
		base64.RawURLEncoding.EncodeToString([]byte("XX|L|B|a|b|c")),
		base64.RawURLEncoding.EncodeToString([]byte("SP|L|B|a|b")),
		base64.RawURLEncoding.EncodeToString([]byte("SP|Q|B|a|b|c")),
	} {
		_, err := DecodeSpot(m)
		require.ErrorIs(t, err, ErrMalformed, m)
	}
}
