package domain

import "strings"

// SecurityType represents the authentication scheme of a network
type SecurityType string

const (
	SecurityOpen      SecurityType = "open"
	SecurityOWE       SecurityType = "owe"
	SecurityWEP       SecurityType = "wep"
	SecurityPSK       SecurityType = "psk"
	SecuritySAE       SecurityType = "sae"
	SecurityEAP       SecurityType = "eap"
	SecurityEAPSuiteB SecurityType = "eap-suite-b"
	SecurityUnknown   SecurityType = ""
)

// AllSecurityTypes lists every known security type
var AllSecurityTypes = []SecurityType{
	SecurityOpen,
	SecurityOWE,
	SecurityWEP,
	SecurityPSK,
	SecuritySAE,
	SecurityEAP,
	SecurityEAPSuiteB,
}

// IsValid reports whether s is a known security type
func (s SecurityType) IsValid() bool {
	for _, known := range AllSecurityTypes {
		if s == known {
			return true
		}
	}
	return false
}

// NeedsKey reports whether the security type requires a pre-shared key
func (s SecurityType) NeedsKey() bool {
	return s == SecurityPSK || s == SecuritySAE || s == SecurityWEP
}

// ProfileSuffix returns the upper-case token used in profile keys
func (s SecurityType) ProfileSuffix() string {
	switch s {
	case SecurityOpen:
		return "NONE"
	case SecurityOWE:
		return "OWE"
	case SecurityWEP:
		return "WEP"
	case SecurityPSK:
		return "WPA_PSK"
	case SecuritySAE:
		return "SAE"
	case SecurityEAP:
		return "WPA_EAP"
	case SecurityEAPSuiteB:
		return "SUITE_B_192"
	default:
		return "UNKNOWN"
	}
}

// ParseSecurityType parses a config-file security name.
// Accepts the canonical names plus a few common aliases.
func ParseSecurityType(s string) SecurityType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "none", "":
		return SecurityOpen
	case "owe", "enhanced-open":
		return SecurityOWE
	case "wep":
		return SecurityWEP
	case "psk", "wpa-psk", "wpa2-psk", "wpa_psk":
		return SecurityPSK
	case "sae", "wpa3", "wpa3-sae":
		return SecuritySAE
	case "eap", "wpa-eap", "wpa2-eap", "wpa_eap", "enterprise":
		return SecurityEAP
	case "eap-suite-b", "suite-b", "suite_b_192":
		return SecurityEAPSuiteB
	default:
		return SecurityUnknown
	}
}

// SecurityFromCapabilities derives the security type from a scan result
// capabilities string such as "[WPA2-PSK-CCMP][RSN-PSK-CCMP][ESS]".
// The strongest advertised scheme wins; see SecuritiesFromCapabilities for
// networks that advertise more than one.
func SecurityFromCapabilities(caps string) SecurityType {
	return SecuritiesFromCapabilities(caps)[0]
}

// SecuritiesFromCapabilities returns every scheme a scan result advertises,
// strongest first. A WPA2/WPA3 transition network ("[RSN-PSK+SAE-CCMP]")
// yields sae then psk. The result is never empty.
func SecuritiesFromCapabilities(caps string) []SecurityType {
	upper := strings.ToUpper(caps)

	var found []SecurityType
	if strings.Contains(upper, "SUITE_B_192") {
		found = append(found, SecurityEAPSuiteB)
	}
	if strings.Count(upper, "-EAP") > strings.Count(upper, "-EAP_SUITE_B_192") {
		found = append(found, SecurityEAP)
	}
	if strings.Contains(upper, "SAE") {
		found = append(found, SecuritySAE)
	}
	if strings.Contains(upper, "-PSK") {
		found = append(found, SecurityPSK)
	}
	if strings.Contains(upper, "OWE") {
		found = append(found, SecurityOWE)
	}
	if strings.Contains(upper, "WEP") {
		found = append(found, SecurityWEP)
	}
	if len(found) == 0 {
		found = append(found, SecurityOpen)
	}
	return found
}
