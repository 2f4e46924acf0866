package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"netconfig/internal/domain"
)

// Importer parses a set of network configurations
type Importer interface {
	Parse(r io.Reader) ([]*domain.Configuration, error)
	Format() string
}

// Exporter writes a set of network configurations
type Exporter interface {
	Export(cfgs []*domain.Configuration, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for a format name ("yaml", "yml" or "json")
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		return NewYAMLCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// document is the on-disk shape shared by the YAML and JSON codecs
type document struct {
	Networks []networkEntry `json:"networks" yaml:"networks"`
}

type networkEntry struct {
	ID         int    `json:"id" yaml:"id"`
	SSID       string `json:"ssid" yaml:"ssid"`
	Security   string `json:"security" yaml:"security"`
	Hidden     bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Passphrase string `json:"passphrase,omitempty" yaml:"passphrase,omitempty"`
	PSK        string `json:"psk,omitempty" yaml:"psk,omitempty"`

	Shared      bool   `json:"shared,omitempty" yaml:"shared,omitempty"`
	CreatorUID  int    `json:"creator_uid" yaml:"creator_uid"`
	CreatorName string `json:"creator_name,omitempty" yaml:"creator_name,omitempty"`

	FromSpecifier  bool   `json:"from_specifier,omitempty" yaml:"from_specifier,omitempty"`
	FromSuggestion bool   `json:"from_suggestion,omitempty" yaml:"from_suggestion,omitempty"`
	FQDN           string `json:"fqdn,omitempty" yaml:"fqdn,omitempty"`
}

// toDomain converts an entry, expanding WPA-PSK passphrases into raw keys
func (e networkEntry) toDomain() (*domain.Configuration, error) {
	security := domain.ParseSecurityType(e.Security)
	if security == domain.SecurityUnknown {
		return nil, fmt.Errorf("network %q: unknown security %q", e.SSID, e.Security)
	}

	cfg := domain.NewConfiguration(e.ID, e.SSID, security, e.CreatorUID)
	cfg.Hidden = e.Hidden
	cfg.Shared = e.Shared
	cfg.CreatorName = e.CreatorName
	cfg.FromSpecifier = e.FromSpecifier
	cfg.FromSuggestion = e.FromSuggestion
	cfg.FQDN = e.FQDN

	key := e.PSK
	if key == "" && e.Passphrase != "" {
		key = e.Passphrase
	}
	if key != "" && security == domain.SecurityPSK {
		psk, err := domain.NormalizePSK(key, e.SSID)
		if err != nil {
			return nil, fmt.Errorf("network %q: %w", e.SSID, err)
		}
		key = psk
	}
	cfg.PreSharedKey = key

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("network %q: %w", e.SSID, err)
	}
	return cfg, nil
}

func entryFromDomain(cfg *domain.Configuration) networkEntry {
	return networkEntry{
		ID:             cfg.ID,
		SSID:           domain.UnquoteSSID(cfg.SSID),
		Security:       string(cfg.Security),
		Hidden:         cfg.Hidden,
		PSK:            cfg.PreSharedKey,
		Shared:         cfg.Shared,
		CreatorUID:     cfg.CreatorUID,
		CreatorName:    cfg.CreatorName,
		FromSpecifier:  cfg.FromSpecifier,
		FromSuggestion: cfg.FromSuggestion,
		FQDN:           cfg.FQDN,
	}
}

func fromDocument(doc document) ([]*domain.Configuration, error) {
	cfgs := make([]*domain.Configuration, 0, len(doc.Networks))
	for _, e := range doc.Networks {
		cfg, err := e.toDomain()
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// toDocument orders entries by ID so exports are stable
func toDocument(cfgs []*domain.Configuration) document {
	sorted := append([]*domain.Configuration(nil), cfgs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	doc := document{Networks: make([]networkEntry, 0, len(sorted))}
	for _, cfg := range sorted {
		doc.Networks = append(doc.Networks, entryFromDomain(cfg))
	}
	return doc
}
