// Package bridge detects whether the web view runs inside the companion wallet.
package bridge

import (
	"context"
	"regexp"

	"mixin_wallet/internal/domain/entity"
)

var iosUserAgent = regexp.MustCompile(`(?i)\(i[^;]+;( U;)? CPU.+Mac OS X`)

// IsIOS reports whether userAgent belongs to an iPhone, iPad or iPod browser.
func IsIOS(userAgent string) bool {
	return iosUserAgent.MatchString(userAgent)
}

// Detect returns the host bridge exposed by env. iOS hosts expose a webkit message
// handler; other hosts expose a global context object with a getContext function.
func Detect(env entity.HostEnvironment) entity.HostBridge {
	if IsIOS(env.UserAgent) {
		if env.WebkitMessageHandler {
			return entity.HostBridgeIOS
		}
		return entity.HostBridgeNone
	}
	if env.GlobalContext && env.GlobalContextGetter {
		return entity.HostBridgeOther
	}
	return entity.HostBridgeNone
}

// HostAssets would list the user's assets through the host bridge.
// TODO: implement the iOS message handler and getContext calls once the host
// protocol for asset listing is available.
func HostAssets(_ context.Context, b entity.HostBridge) ([]entity.AssetBalance, error) {
	if b == entity.HostBridgeNone {
		return nil, nil
	}
	return nil, entity.ErrHostBridgeNotImplemented
}
