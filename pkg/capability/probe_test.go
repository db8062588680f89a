package capability

import (
	"net/http/httptest"
	"testing"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		headers map[string]string
		want    domain.Capability
	}{
		{"default pointer", "/", nil, domain.CapabilityPointer},
		{"query hint", "/?capability=touch", nil, domain.CapabilityTouch},
		{"query beats header", "/?capability=pointer", map[string]string{HintHeader: "touch"}, domain.CapabilityPointer},
		{"header hint", "/", map[string]string{HintHeader: "coarse"}, domain.CapabilityTouch},
		{"client hint mobile", "/", map[string]string{"Sec-CH-UA-Mobile": "?1"}, domain.CapabilityTouch},
		{"client hint desktop", "/", map[string]string{"Sec-CH-UA-Mobile": "?0"}, domain.CapabilityPointer},
		{"mobile user agent", "/", map[string]string{"User-Agent": "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile/15E148"}, domain.CapabilityTouch},
		{"bad hint", "/?capability=stylus", nil, domain.CapabilityPointer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, FromRequest(r))
		})
	}
}
