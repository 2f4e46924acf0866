// Package registry holds the in-memory index of saved network configurations.
//
// A Registry keeps three views of the same records:
//
//   - every configuration by network ID, regardless of user
//   - configurations visible to the active user, by network ID
//   - signature-eligible configurations visible to the active user, by match
//     signature
//
// Visibility is decided once, when a configuration is inserted, using the
// Checker supplied at construction. Switching the active user does not
// re-evaluate existing entries unless the registry was built with
// WithRecomputeOnUserSwitch or the caller invokes Refresh.
//
// A Registry is not safe for concurrent use. Callers serialize access.
package registry

import (
	"fmt"
	"io"
	"sort"

	"netconfig/internal/domain"
)

// SystemUser is the user active before any switch
const SystemUser = 0

// Checker decides whether a creator UID belongs to the active user or to the
// device owner. It must not call back into the registry.
type Checker interface {
	BelongsToCurrentUserOrDeviceOwner(uid int) bool
}

// CheckerFunc adapts a plain function to Checker
type CheckerFunc func(uid int) bool

// BelongsToCurrentUserOrDeviceOwner calls f(uid)
func (f CheckerFunc) BelongsToCurrentUserOrDeviceOwner(uid int) bool {
	return f(uid)
}

// Option configures a Registry
type Option func(*Registry)

// WithRecomputeOnUserSwitch makes SetActiveUser re-evaluate current-user
// membership of every stored configuration
func WithRecomputeOnUserSwitch() Option {
	return func(r *Registry) {
		r.recomputeOnSwitch = true
	}
}

var denyAll = CheckerFunc(func(int) bool { return false })

// Registry indexes network configurations by ID and by match signature
type Registry struct {
	checker Checker

	allByID            map[int]*domain.Configuration
	currentByID        map[int]*domain.Configuration
	currentBySignature map[domain.MatchSignature]*domain.Configuration

	activeUser        int
	recomputeOnSwitch bool
}

// New creates an empty registry using checker for visibility decisions.
// A nil checker denies every creator, so only shared networks become
// visible to the current user.
func New(checker Checker, opts ...Option) *Registry {
	if checker == nil {
		checker = denyAll
	}
	r := &Registry{
		checker:            checker,
		allByID:            make(map[int]*domain.Configuration),
		currentByID:        make(map[int]*domain.Configuration),
		currentBySignature: make(map[domain.MatchSignature]*domain.Configuration),
		activeUser:         SystemUser,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Put stores cfg under cfg.ID, replacing any previous entry, and returns the
// configuration previously stored under that ID.
//
// If cfg is not visible to the active user, existing current-user entries for
// the same ID are left as they are.
func (r *Registry) Put(cfg *domain.Configuration) (*domain.Configuration, bool) {
	prev, ok := r.allByID[cfg.ID]
	r.allByID[cfg.ID] = cfg
	r.index(cfg)
	return prev, ok
}

// index adds cfg to the current-user views if the active user may see it
func (r *Registry) index(cfg *domain.Configuration) {
	if !cfg.Shared && !r.checker.BelongsToCurrentUserOrDeviceOwner(cfg.CreatorUID) {
		return
	}
	r.currentByID[cfg.ID] = cfg
	if cfg.SignatureEligible() {
		r.currentBySignature[cfg.Signature()] = cfg
	}
}

// Remove deletes the configuration stored under id from every index
func (r *Registry) Remove(id int) (*domain.Configuration, bool) {
	cfg, ok := r.allByID[id]
	if !ok {
		return nil, false
	}
	delete(r.allByID, id)
	delete(r.currentByID, id)

	// A replaced configuration whose SSID or security changed leaves its old
	// signature entry behind, so every entry carrying id goes.
	for sig, indexed := range r.currentBySignature {
		if indexed.ID == id {
			delete(r.currentBySignature, sig)
		}
	}
	return cfg, true
}

// Clear empties every index. The active user is kept.
func (r *Registry) Clear() {
	clear(r.allByID)
	clear(r.currentByID)
	clear(r.currentBySignature)
}

// SetActiveUser records the new foreground user.
//
// Unless the registry recomputes on switch, current-user views keep
// reflecting the user that was active when each entry was inserted. Callers
// wanting a consistent view either Refresh or Clear and re-Put.
func (r *Registry) SetActiveUser(userID int) {
	r.activeUser = userID
	if r.recomputeOnSwitch {
		r.Refresh()
	}
}

// ActiveUser returns the user set by the last SetActiveUser
func (r *Registry) ActiveUser() int {
	return r.activeUser
}

// Refresh rebuilds both current-user views from the all-users index using
// the checker's present answers. Ordering by ID keeps signature collisions
// deterministic: the highest ID wins.
func (r *Registry) Refresh() {
	clear(r.currentByID)
	clear(r.currentBySignature)
	for _, cfg := range sortedByID(r.allByID) {
		r.index(cfg)
	}
}

// GetForAllUsers returns the configuration with id, whoever owns it
func (r *Registry) GetForAllUsers(id int) (*domain.Configuration, bool) {
	cfg, ok := r.allByID[id]
	return cfg, ok
}

// GetForCurrentUser returns the configuration with id if the active user can see it
func (r *Registry) GetForCurrentUser(id int) (*domain.Configuration, bool) {
	cfg, ok := r.currentByID[id]
	return cfg, ok
}

// SizeForAllUsers returns the number of stored configurations
func (r *Registry) SizeForAllUsers() int {
	return len(r.allByID)
}

// SizeForCurrentUser returns the number of configurations visible to the active user
func (r *Registry) SizeForCurrentUser() int {
	return len(r.currentByID)
}

// GetByProfileKeyForCurrentUser scans the current-user view for a
// configuration whose profile key equals key. An empty key never matches.
func (r *Registry) GetByProfileKeyForCurrentUser(key string) (*domain.Configuration, bool) {
	if key == "" {
		return nil, false
	}
	for _, cfg := range r.currentByID {
		if cfg.ProfileKey() == key {
			return cfg, true
		}
	}
	return nil, false
}

// GetBySignatureForCurrentUser returns the configuration indexed under sig
func (r *Registry) GetBySignatureForCurrentUser(sig domain.MatchSignature) (*domain.Configuration, bool) {
	cfg, ok := r.currentBySignature[sig]
	return cfg, ok
}

// GetByScanResultForCurrentUser returns the saved configuration matching an
// observed network's SSID and security. Networks advertising several
// securities match on the strongest one that has a saved configuration.
func (r *Registry) GetByScanResultForCurrentUser(scan domain.ScanResult) (*domain.Configuration, bool) {
	for _, sig := range domain.SignaturesFromScan(scan) {
		if cfg, ok := r.GetBySignatureForCurrentUser(sig); ok {
			return cfg, true
		}
	}
	return nil, false
}

// ValuesForAllUsers returns a snapshot of every stored configuration
func (r *Registry) ValuesForAllUsers() []*domain.Configuration {
	return values(r.allByID)
}

// ValuesForCurrentUser returns a snapshot of configurations visible to the active user
func (r *Registry) ValuesForCurrentUser() []*domain.Configuration {
	return values(r.currentByID)
}

// Dump writes the registry contents for debugging. The format is not stable.
func (r *Registry) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "activeUser=%d\n", r.activeUser); err != nil {
		return err
	}
	if err := dumpByID(w, "allUsers", r.allByID); err != nil {
		return err
	}
	if err := dumpByID(w, "currentUser", r.currentByID); err != nil {
		return err
	}

	sigs := make([]domain.MatchSignature, 0, len(r.currentBySignature))
	for sig := range r.currentBySignature {
		sigs = append(sigs, sig)
	}
	sort.Slice(sigs, func(i, j int) bool {
		if sigs[i].SSID != sigs[j].SSID {
			return sigs[i].SSID < sigs[j].SSID
		}
		return sigs[i].Security < sigs[j].Security
	})

	if _, err := fmt.Fprintf(w, "currentUserBySignature (%d):\n", len(sigs)); err != nil {
		return err
	}
	for _, sig := range sigs {
		if _, err := fmt.Fprintf(w, "  %s -> %d\n", sig, r.currentBySignature[sig].ID); err != nil {
			return err
		}
	}
	return nil
}

func dumpByID(w io.Writer, name string, m map[int]*domain.Configuration) error {
	if _, err := fmt.Fprintf(w, "%s (%d):\n", name, len(m)); err != nil {
		return err
	}
	for _, cfg := range sortedByID(m) {
		if _, err := fmt.Fprintf(w, "  %s\n", cfg); err != nil {
			return err
		}
	}
	return nil
}

func values(m map[int]*domain.Configuration) []*domain.Configuration {
	out := make([]*domain.Configuration, 0, len(m))
	for _, cfg := range m {
		out = append(out, cfg)
	}
	return out
}

func sortedByID(m map[int]*domain.Configuration) []*domain.Configuration {
	out := values(m)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
