package domain

import (
	"fmt"
	"strings"
)

// MatchSignature identifies a network by name and security scheme.
// It is comparable and used directly as a map key; two networks with equal
// signatures are the same network as far as scan matching is concerned.
type MatchSignature struct {
	SSID     string
	Security SecurityType
}

// NewMatchSignature is the single derivation used for both stored
// configurations and observed scan results
func NewMatchSignature(ssid string, security SecurityType) MatchSignature {
	return MatchSignature{
		SSID:     UnquoteSSID(ssid),
		Security: security,
	}
}

// SignatureFromConfiguration derives the signature of a stored configuration
func SignatureFromConfiguration(c *Configuration) MatchSignature {
	return NewMatchSignature(c.SSID, c.Security)
}

// SignatureFromScan derives the signature of an observed network using its
// strongest advertised security
func SignatureFromScan(s ScanResult) MatchSignature {
	return NewMatchSignature(s.SSID, SecurityFromCapabilities(s.Capabilities))
}

// SignaturesFromScan derives one signature per advertised security,
// strongest first
func SignaturesFromScan(s ScanResult) []MatchSignature {
	securities := SecuritiesFromCapabilities(s.Capabilities)
	sigs := make([]MatchSignature, 0, len(securities))
	for _, sec := range securities {
		sigs = append(sigs, NewMatchSignature(s.SSID, sec))
	}
	return sigs
}

func (m MatchSignature) String() string {
	return fmt.Sprintf("%s/%s", QuoteSSID(m.SSID), m.Security)
}

// QuoteSSID wraps an SSID in double quotes unless it already is
func QuoteSSID(ssid string) string {
	if isQuoted(ssid) {
		return ssid
	}
	return `"` + ssid + `"`
}

// UnquoteSSID strips one level of surrounding double quotes
func UnquoteSSID(ssid string) string {
	if isQuoted(ssid) {
		return ssid[1 : len(ssid)-1]
	}
	return ssid
}

func isQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}
