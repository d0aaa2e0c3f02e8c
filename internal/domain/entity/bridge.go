package entity

// HostBridge identifies which companion wallet bridge, if any, hosts the web view.
type HostBridge int

const (
	HostBridgeNone HostBridge = iota
	HostBridgeIOS
	HostBridgeOther
)

func (b HostBridge) String() string {
	switch b {
	case HostBridgeIOS:
		return "ios"
	case HostBridgeOther:
		return "other"
	default:
		return "none"
	}
}

// HostEnvironment carries the feature flags a web view exposes about its host.
type HostEnvironment struct {
	UserAgent string
	// WebkitMessageHandler reports window.webkit.messageHandlers.MixinContext.
	WebkitMessageHandler bool
	// GlobalContext reports window.MixinContext.
	GlobalContext bool
	// GlobalContextGetter reports that window.MixinContext.getContext is a function.
	GlobalContextGetter bool
}
