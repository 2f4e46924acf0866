package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Configuration represents a saved network configuration.
//
// The registry never mutates a Configuration; replacing one means inserting a
// new value under the same ID.
type Configuration struct {
	ID       int          `json:"id" yaml:"id"`
	SSID     string       `json:"ssid" yaml:"ssid"`
	Security SecurityType `json:"security" yaml:"security"`
	Hidden   bool         `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// PreSharedKey holds either a quoted passphrase or a 64 hex digit PSK
	PreSharedKey string `json:"psk,omitempty" yaml:"psk,omitempty"`

	// Ownership
	Shared      bool   `json:"shared" yaml:"shared"`
	CreatorUID  int    `json:"creator_uid" yaml:"creator_uid"`
	CreatorName string `json:"creator_name,omitempty" yaml:"creator_name,omitempty"`

	// Origin flags. Any of these keeps the configuration out of the
	// scan-match index.
	FromSpecifier  bool   `json:"from_specifier,omitempty" yaml:"from_specifier,omitempty"`
	FromSuggestion bool   `json:"from_suggestion,omitempty" yaml:"from_suggestion,omitempty"`
	FQDN           string `json:"fqdn,omitempty" yaml:"fqdn,omitempty"` // set for passpoint profiles

	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// NewConfiguration creates a configuration owned by creatorUID
func NewConfiguration(id int, ssid string, security SecurityType, creatorUID int) *Configuration {
	now := time.Now()
	return &Configuration{
		ID:         id,
		SSID:       ssid,
		Security:   security,
		CreatorUID: creatorUID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsPasspoint reports whether this is a passpoint (Hotspot 2.0) profile
func (c *Configuration) IsPasspoint() bool {
	return c.FQDN != ""
}

// SignatureEligible reports whether the configuration may be looked up by
// match signature. Ephemeral specifier/suggestion networks and passpoint
// profiles are excluded.
func (c *Configuration) SignatureEligible() bool {
	return !c.FromSpecifier && !c.FromSuggestion && !c.IsPasspoint()
}

// Signature derives the match signature of this configuration
func (c *Configuration) Signature() MatchSignature {
	return SignatureFromConfiguration(c)
}

// ProfileKey returns the textual key identifying this profile.
//
// Saved networks:  "<ssid>"<SECURITY>
// Passpoint:       <fqdn>PASSPOINT
// Suggestions:     saved-network key + "_" + creator name
func (c *Configuration) ProfileKey() string {
	if c.IsPasspoint() {
		return c.FQDN + "PASSPOINT"
	}
	key := QuoteSSID(c.SSID) + c.Security.ProfileSuffix()
	if c.FromSuggestion {
		key += "_" + c.CreatorName
	}
	return key
}

// Validate checks that the configuration is well formed
func (c *Configuration) Validate() error {
	if c.ID < 0 {
		return fmt.Errorf("invalid network id %d", c.ID)
	}
	if UnquoteSSID(c.SSID) == "" && !c.IsPasspoint() {
		return errors.New("ssid is required")
	}
	if !c.Security.IsValid() {
		return fmt.Errorf("unknown security type %q", c.Security)
	}
	if c.Security.NeedsKey() && c.PreSharedKey == "" {
		return fmt.Errorf("security %s requires a pre-shared key", c.Security)
	}
	return nil
}

// String renders a short single-line description used by debug dumps
func (c *Configuration) String() string {
	var flags []string
	if c.Shared {
		flags = append(flags, "shared")
	}
	if c.FromSpecifier {
		flags = append(flags, "specifier")
	}
	if c.FromSuggestion {
		flags = append(flags, "suggestion")
	}
	if c.IsPasspoint() {
		flags = append(flags, "passpoint")
	}
	s := fmt.Sprintf("id=%d ssid=%s security=%s creator=%d", c.ID, QuoteSSID(c.SSID), c.Security, c.CreatorUID)
	if len(flags) > 0 {
		s += " [" + strings.Join(flags, ",") + "]"
	}
	return s
}
