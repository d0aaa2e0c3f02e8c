// Package memo encodes trade intents into the opaque memo attached to payments.
//
// A spot memo is the fields below joined by '|' and base64 raw-url encoded:
//
//	SP|<L|M>|<B|S>|<exchange>|<symbol>|<price>
package memo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	spotTag   = "SP"
	separator = "|"
)

// ErrMalformed is returned when a memo cannot be decoded.
var ErrMalformed = errors.New("malformed memo")

// SpotIntent is the structured payload of a spot trade payment.
type SpotIntent struct {
	Limit    bool
	Buy      bool
	Symbol   string
	Price    string
	Exchange string
}

// EncodeSpot renders the intent as a memo string.
func EncodeSpot(in SpotIntent) string {
	kind := "M"
	if in.Limit {
		kind = "L"
	}
	side := "S"
	if in.Buy {
		side = "B"
	}
	raw := strings.Join([]string{spotTag, kind, side, in.Exchange, in.Symbol, in.Price}, separator)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeSpot parses a memo produced by EncodeSpot.
func DecodeSpot(memo string) (SpotIntent, error) {
	raw, err := base64.RawURLEncoding.DecodeString(memo)
	if err != nil {
		return SpotIntent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	parts := strings.Split(string(raw), separator)
	if len(parts) != 6 || parts[0] != spotTag {
		return SpotIntent{}, fmt.Errorf("%w: unexpected layout %q", ErrMalformed, raw)
	}
	if (parts[1] != "L" && parts[1] != "M") || (parts[2] != "B" && parts[2] != "S") {
		return SpotIntent{}, fmt.Errorf("%w: unexpected flags %q", ErrMalformed, raw)
	}
	return SpotIntent{
		Limit:    parts[1] == "L",
		Buy:      parts[2] == "B",
		Exchange: parts[3],
		Symbol:   parts[4],
		Price:    parts[5],
	}, nil
}
