// Package permissions decides which users own which creator UIDs.
//
// UIDs are partitioned into per-user ranges: uid / PerUserRange is the user
// the UID belongs to. A Policy tracks the foreground user, that user's
// profiles, and the device-owner UIDs, and answers the registry's
// visibility question from those.
package permissions

import "sync"

// DefaultPerUserRange is the number of UIDs reserved per user
const DefaultPerUserRange = 100000

// Policy implements registry.Checker
type Policy struct {
	mu              sync.RWMutex
	perUserRange    int
	foreground      int
	profiles        map[int][]int // parent user -> profile users
	deviceOwnerUIDs map[int]struct{}
}

// NewPolicy creates a policy with the system user in the foreground.
// A perUserRange <= 0 selects DefaultPerUserRange.
func NewPolicy(perUserRange int) *Policy {
	if perUserRange <= 0 {
		perUserRange = DefaultPerUserRange
	}
	return &Policy{
		perUserRange:    perUserRange,
		profiles:        make(map[int][]int),
		deviceOwnerUIDs: make(map[int]struct{}),
	}
}

// UserID returns the user a UID belongs to
func (p *Policy) UserID(uid int) int {
	return uid / p.perUserRange
}

// SetForegroundUser changes the user whose networks are visible
func (p *Policy) SetForegroundUser(userID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.foreground = userID
}

// ForegroundUser returns the current foreground user
func (p *Policy) ForegroundUser() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.foreground
}

// SetProfiles declares profile users (work profiles) belonging to parent.
// Networks created in a profile are visible while the parent is in front.
func (p *Policy) SetProfiles(parent int, profiles []int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[parent] = append([]int(nil), profiles...)
}

// AddDeviceOwner marks uid as the device owner; its networks are visible to
// every user
func (p *Policy) AddDeviceOwner(uid int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deviceOwnerUIDs[uid] = struct{}{}
}

// BelongsToCurrentUserOrDeviceOwner reports whether a network created by uid
// is visible to the foreground user
func (p *Policy) BelongsToCurrentUserOrDeviceOwner(uid int) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if _, ok := p.deviceOwnerUIDs[uid]; ok {
		return true
	}

	owner := p.UserID(uid)
	if owner == p.foreground {
		return true
	}
	for _, profile := range p.profiles[p.foreground] {
		if owner == profile {
			return true
		}
	}
	return false
}
