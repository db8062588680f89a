// Package capability resolves the visitor's input capability once per session.
package capability

import (
	"net/http"
	"strings"

	"github.com/aretw0/vestibule/pkg/domain"
)

// HintHeader lets a client state its capability explicitly ("touch" or "pointer").
// Browsers can fill it from matchMedia("(pointer: coarse)").
const HintHeader = "X-Input-Capability"

// FromHint parses an explicit hint. Unknown or empty hints resolve to pointer.
func FromHint(hint string) domain.Capability {
	c, err := domain.ParseCapability(hint)
	if err != nil {
		return domain.CapabilityPointer
	}
	return c
}

// FromRequest probes an HTTP request. An explicit hint (query "capability" or
// HintHeader) wins; otherwise client hints and the user agent decide.
func FromRequest(r *http.Request) domain.Capability {
	if hint := r.URL.Query().Get("capability"); hint != "" {
		return FromHint(hint)
	}
	if hint := r.Header.Get(HintHeader); hint != "" {
		return FromHint(hint)
	}
	if r.Header.Get("Sec-CH-UA-Mobile") == "?1" {
		return domain.CapabilityTouch
	}
	return FromUserAgent(r.UserAgent())
}

// FromUserAgent is a coarse fallback for clients that send no hints.
func FromUserAgent(ua string) domain.Capability {
	ua = strings.ToLower(ua)
	for _, marker := range []string{"mobi", "android", "iphone", "ipad"} {
		if strings.Contains(ua, marker) {
			return domain.CapabilityTouch
		}
	}
	return domain.CapabilityPointer
}
