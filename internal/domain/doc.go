// Package domain defines the saved Wi-Fi network types.
//
// # Core Types
//
// Configuration is a saved network: SSID, security type, key material and
// the creator UID that decides which users may see it. Configurations carry
// origin flags (specifier, suggestion, passpoint) that keep them out of
// scan matching.
//
// MatchSignature is the (unquoted SSID, security type) pair used to match a
// saved network against a ScanResult.
//
// # Profile Keys
//
// A profile key is the string form of a saved network's identity: the quoted
// SSID followed by the security suffix, e.g. "Home"WPA_PSK. Passpoint
// profiles use their FQDN and suggestions append the suggesting app.
//
// # Keys
//
// WPA-PSK passphrases are turned into 64 hex digit keys with PBKDF2-SHA1
// keyed by the SSID, the same derivation supplicants use.
//
// The package has no storage or transport dependencies.
package domain
