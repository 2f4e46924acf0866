package domain

// ScanResult is a network observed during a scan
type ScanResult struct {
	SSID         string `json:"ssid"`
	BSSID        string `json:"bssid,omitempty"`
	Capabilities string `json:"capabilities"`
	Frequency    int    `json:"frequency,omitempty"` // MHz
	Level        int    `json:"level,omitempty"`     // dBm
}

// Security returns the security type advertised by the scan result
func (s ScanResult) Security() SecurityType {
	return SecurityFromCapabilities(s.Capabilities)
}
