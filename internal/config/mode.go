package config

// UserSwitchMode controls what happens to the current-user views when the
// foreground user changes
type UserSwitchMode string

const (
	UserSwitchLazy  UserSwitchMode = "lazy"  // keep entries evaluated for the previous user
	UserSwitchEager UserSwitchMode = "eager" // recompute current-user views from every known network
)

// ParseUserSwitchMode converts a string to UserSwitchMode, defaulting to UserSwitchLazy
func ParseUserSwitchMode(s string) UserSwitchMode {
	switch s {
	case "lazy":
		return UserSwitchLazy
	case "eager":
		return UserSwitchEager
	default:
		return UserSwitchLazy
	}
}

// IsEager reports whether switching users rebuilds the current-user views
func (m UserSwitchMode) IsEager() bool {
	return m == UserSwitchEager
}
