package permissions

import "testing"

func TestUserID(t *testing.T) {
	p := NewPolicy(0)

	tests := []struct {
		uid  int
		user int
	}{
		{0, 0},
		{1000, 0},
		{99999, 0},
		{100000, 1},
		{1010123, 10},
	}

	for _, tt := range tests {
		if got := p.UserID(tt.uid); got != tt.user {
			t.Errorf("UserID(%d) = %d, want %d", tt.uid, got, tt.user)
		}
	}
}

func TestBelongsToCurrentUserOrDeviceOwner(t *testing.T) {
	p := NewPolicy(DefaultPerUserRange)
	p.SetProfiles(0, []int{11})
	p.AddDeviceOwner(1010500)

	tests := []struct {
		name       string
		foreground int
		uid        int
		want       bool
	}{
		{"system app in system user", 0, 1000, true},
		{"other user's app", 0, 1010123, false},
		{"profile of foreground user", 0, 1110123, true},
		{"device owner from other user", 0, 1010500, true},
		{"switched to user 10", 10, 1010123, true},
		{"system app after switch", 10, 1000, false},
		{"profile not linked to user 10", 10, 1110123, false},
		{"device owner after switch", 10, 1010500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.SetForegroundUser(tt.foreground)
			if got := p.BelongsToCurrentUserOrDeviceOwner(tt.uid); got != tt.want {
				t.Errorf("BelongsToCurrentUserOrDeviceOwner(%d) = %v, want %v", tt.uid, got, tt.want)
			}
		})
	}
}

func TestNewPolicyDefaults(t *testing.T) {
	p := NewPolicy(-5)
	if p.perUserRange != DefaultPerUserRange {
		t.Errorf("perUserRange = %d, want %d", p.perUserRange, DefaultPerUserRange)
	}
	if p.ForegroundUser() != 0 {
		t.Errorf("ForegroundUser() = %d, want 0", p.ForegroundUser())
	}
}
