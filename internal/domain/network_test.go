package domain

import (
	"reflect"
	"testing"
)

func TestParseSecurityType(t *testing.T) {
	tests := []struct {
		input string
		want  SecurityType
	}{
		{"open", SecurityOpen},
		{"", SecurityOpen},
		{"WPA2-PSK", SecurityPSK},
		{"psk", SecurityPSK},
		{"wpa3", SecuritySAE},
		{"enterprise", SecurityEAP},
		{"suite-b", SecurityEAPSuiteB},
		{"owe", SecurityOWE},
		{"wep", SecurityWEP},
		{"bogus", SecurityUnknown},
	}

	for _, tt := range tests {
		if got := ParseSecurityType(tt.input); got != tt.want {
			t.Errorf("ParseSecurityType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSecurityFromCapabilities(t *testing.T) {
	tests := []struct {
		caps string
		want SecurityType
	}{
		{"[ESS]", SecurityOpen},
		{"", SecurityOpen},
		{"[WPA2-PSK-CCMP][RSN-PSK-CCMP][ESS]", SecurityPSK},
		{"[RSN-PSK+SAE-CCMP][ESS]", SecuritySAE},
		{"[RSN-SAE-CCMP][ESS][MFPR]", SecuritySAE},
		{"[WPA2-EAP-CCMP][ESS]", SecurityEAP},
		{"[RSN-EAP_SUITE_B_192-GCMP-256][ESS]", SecurityEAPSuiteB},
		{"[RSN-OWE-CCMP][ESS]", SecurityOWE},
		{"[WEP][ESS]", SecurityWEP},
	}

	for _, tt := range tests {
		if got := SecurityFromCapabilities(tt.caps); got != tt.want {
			t.Errorf("SecurityFromCapabilities(%q) = %q, want %q", tt.caps, got, tt.want)
		}
	}
}

func TestSecuritiesFromCapabilities(t *testing.T) {
	tests := []struct {
		caps string
		want []SecurityType
	}{
		{"[ESS]", []SecurityType{SecurityOpen}},
		{"[RSN-PSK+SAE-CCMP][ESS]", []SecurityType{SecuritySAE, SecurityPSK}},
		{"[WPA2-PSK-CCMP][RSN-PSK-CCMP][ESS]", []SecurityType{SecurityPSK}},
		{"[WPA2-EAP-CCMP][RSN-EAP_SUITE_B_192-GCMP-256][ESS]", []SecurityType{SecurityEAPSuiteB, SecurityEAP}},
		{"[RSN-EAP_SUITE_B_192-GCMP-256][ESS]", []SecurityType{SecurityEAPSuiteB}},
	}

	for _, tt := range tests {
		got := SecuritiesFromCapabilities(tt.caps)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SecuritiesFromCapabilities(%q) = %v, want %v", tt.caps, got, tt.want)
		}
	}
}

func TestSignaturesFromTransitionScan(t *testing.T) {
	scan := ScanResult{SSID: "Home", Capabilities: "[RSN-PSK+SAE-CCMP][ESS]"}
	sigs := SignaturesFromScan(scan)
	want := []MatchSignature{
		{SSID: "Home", Security: SecuritySAE},
		{SSID: "Home", Security: SecurityPSK},
	}
	if !reflect.DeepEqual(sigs, want) {
		t.Errorf("SignaturesFromScan() = %v, want %v", sigs, want)
	}
	if SignatureFromScan(scan) != want[0] {
		t.Errorf("SignatureFromScan() = %v, want strongest %v", SignatureFromScan(scan), want[0])
	}
}

func TestSignatureDerivationAgrees(t *testing.T) {
	cfg := NewConfiguration(1, `"Home"`, SecurityPSK, 1000)
	scan := ScanResult{SSID: "Home", Capabilities: "[WPA2-PSK-CCMP][ESS]"}

	if SignatureFromConfiguration(cfg) != SignatureFromScan(scan) {
		t.Errorf("signatures differ: config=%s scan=%s", cfg.Signature(), SignatureFromScan(scan))
	}

	open := ScanResult{SSID: "Home", Capabilities: "[ESS]"}
	if SignatureFromConfiguration(cfg) == SignatureFromScan(open) {
		t.Error("open scan result should not match a PSK configuration")
	}
}

func TestSignatureEligible(t *testing.T) {
	t.Run("saved network is eligible", func(t *testing.T) {
		cfg := NewConfiguration(1, "Home", SecurityOpen, 0)
		if !cfg.SignatureEligible() {
			t.Error("expected saved network to be eligible")
		}
	})

	t.Run("specifier network is not eligible", func(t *testing.T) {
		cfg := NewConfiguration(1, "Home", SecurityOpen, 0)
		cfg.FromSpecifier = true
		if cfg.SignatureEligible() {
			t.Error("expected specifier network to be excluded")
		}
	})

	t.Run("suggestion is not eligible", func(t *testing.T) {
		cfg := NewConfiguration(1, "Home", SecurityOpen, 0)
		cfg.FromSuggestion = true
		if cfg.SignatureEligible() {
			t.Error("expected suggestion to be excluded")
		}
	})

	t.Run("passpoint is not eligible", func(t *testing.T) {
		cfg := NewConfiguration(1, "", SecurityEAP, 0)
		cfg.FQDN = "hotspot.example.com"
		if cfg.SignatureEligible() {
			t.Error("expected passpoint profile to be excluded")
		}
	})
}

func TestProfileKey(t *testing.T) {
	saved := NewConfiguration(1, "Home", SecurityPSK, 0)
	if got := saved.ProfileKey(); got != `"Home"WPA_PSK` {
		t.Errorf("ProfileKey() = %s", got)
	}

	quoted := NewConfiguration(2, `"Home"`, SecurityPSK, 0)
	if quoted.ProfileKey() != saved.ProfileKey() {
		t.Errorf("quoted and bare SSID keys differ: %s vs %s", quoted.ProfileKey(), saved.ProfileKey())
	}

	suggestion := NewConfiguration(3, "Cafe", SecurityOpen, 10010)
	suggestion.FromSuggestion = true
	suggestion.CreatorName = "com.example.app"
	if got := suggestion.ProfileKey(); got != `"Cafe"NONE_com.example.app` {
		t.Errorf("suggestion ProfileKey() = %s", got)
	}

	passpoint := NewConfiguration(4, "", SecurityEAP, 0)
	passpoint.FQDN = "hotspot.example.com"
	if got := passpoint.ProfileKey(); got != "hotspot.example.comPASSPOINT" {
		t.Errorf("passpoint ProfileKey() = %s", got)
	}
}

func TestConfigurationValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Configuration
		wantErr bool
	}{
		{"open network", &Configuration{SSID: "Cafe", Security: SecurityOpen}, false},
		{"psk with key", &Configuration{SSID: "Home", Security: SecurityPSK, PreSharedKey: `"password"`}, false},
		{"psk without key", &Configuration{SSID: "Home", Security: SecurityPSK}, true},
		{"empty ssid", &Configuration{SSID: `""`, Security: SecurityOpen}, true},
		{"unknown security", &Configuration{SSID: "Home", Security: "wpa9"}, true},
		{"negative id", &Configuration{ID: -1, SSID: "Home", Security: SecurityOpen}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDerivePSK(t *testing.T) {
	// IEEE 802.11i test vector
	got, err := DerivePSK("password", "IEEE")
	if err != nil {
		t.Fatalf("DerivePSK failed: %v", err)
	}
	want := "f42c6fc52df0ebef9ebb4b90b38a5f902e83fe1b135a70e23aed762e9710a12e"
	if got != want {
		t.Errorf("DerivePSK() = %s, want %s", got, want)
	}

	if _, err := DerivePSK("short", "IEEE"); err == nil {
		t.Error("expected error for passphrase shorter than 8 characters")
	}
}

func TestNormalizePSK(t *testing.T) {
	raw := "F42C6FC52DF0EBEF9EBB4B90B38A5F902E83FE1B135A70E23AED762E9710A12E"
	got, err := NormalizePSK(raw, "IEEE")
	if err != nil {
		t.Fatalf("NormalizePSK failed: %v", err)
	}
	if got != "f42c6fc52df0ebef9ebb4b90b38a5f902e83fe1b135a70e23aed762e9710a12e" {
		t.Errorf("raw PSK not lower-cased: %s", got)
	}

	quoted, err := NormalizePSK(`"password"`, `"IEEE"`)
	if err != nil {
		t.Fatalf("NormalizePSK failed: %v", err)
	}
	if quoted != got {
		t.Errorf("quoted passphrase derived %s, want %s", quoted, got)
	}
}
