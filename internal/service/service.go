package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"netconfig/internal/codec"
	"netconfig/internal/config"
	"netconfig/internal/domain"
	"netconfig/internal/permissions"
	"netconfig/internal/registry"
	"netconfig/internal/repository"
)

// ErrNotFound is returned when a network is not known (or not visible)
var ErrNotFound = errors.New("network not found")

// Scope selects which registry view a read uses
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeCurrent Scope = "current"
)

// ParseScope converts a string to Scope, defaulting to ScopeCurrent
func ParseScope(s string) Scope {
	if s == string(ScopeAll) {
		return ScopeAll
	}
	return ScopeCurrent
}

// NetworkService coordinates the registry, the repository and the permission policy
type NetworkService struct {
	mu       sync.RWMutex
	reg      *registry.Registry
	policy   *permissions.Policy
	repo     repository.Repository
	eventBus *EventBus
	mode     config.UserSwitchMode
}

// NewNetworkService creates a new network service. The registry is empty
// until Load is called.
func NewNetworkService(repo repository.Repository, policy *permissions.Policy, eventBus *EventBus, mode config.UserSwitchMode) *NetworkService {
	var opts []registry.Option
	if mode.IsEager() {
		opts = append(opts, registry.WithRecomputeOnUserSwitch())
	}

	reg := registry.New(policy, opts...)
	reg.SetActiveUser(policy.ForegroundUser())

	return &NetworkService{
		reg:      reg,
		policy:   policy,
		repo:     repo,
		eventBus: eventBus,
		mode:     mode,
	}
}

// Load replaces the registry contents with every stored network
func (s *NetworkService) Load(ctx context.Context) error {
	networks, err := s.repo.ListNetworks(ctx)
	if err != nil {
		return fmt.Errorf("load networks: %w", err)
	}

	s.mu.Lock()
	s.reg.Clear()
	for _, cfg := range networks {
		s.reg.Put(cfg)
	}
	all, current := s.reg.SizeForAllUsers(), s.reg.SizeForCurrentUser()
	s.mu.Unlock()

	log.Printf("Loaded %d networks (%d visible to user %d)", all, current, s.ActiveUser())

	s.eventBus.Publish(Event{
		Type:    EventNetworksReloaded,
		Payload: map[string]int{"all": all, "current": current},
	})
	return nil
}

// Save validates and stores a network, assigning the next free ID when
// cfg.ID is zero. A WPA-PSK passphrase is replaced by its derived raw key.
// Returns the network previously stored under the ID, if any.
func (s *NetworkService) Save(ctx context.Context, cfg *domain.Configuration) (*domain.Configuration, error) {
	if cfg.Security == domain.SecurityPSK && cfg.PreSharedKey != "" {
		psk, err := domain.NormalizePSK(cfg.PreSharedKey, cfg.SSID)
		if err != nil {
			return nil, fmt.Errorf("invalid network: %w", err)
		}
		cfg.PreSharedKey = psk
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid network: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.ID == 0 {
		id, err := s.nextID(ctx)
		if err != nil {
			return nil, err
		}
		cfg.ID = id
	}

	now := time.Now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	if err := s.repo.UpsertNetwork(ctx, cfg); err != nil {
		return nil, err
	}
	// Drop the old entry first so a changed SSID or security does not leave
	// its signature behind
	prev, _ := s.reg.Remove(cfg.ID)
	s.reg.Put(cfg)

	s.eventBus.Publish(Event{
		Type:    EventNetworkSaved,
		Payload: map[string]interface{}{"id": cfg.ID, "ssid": cfg.SSID, "replaced": prev != nil},
	})
	return prev, nil
}

// nextID returns one past the highest ID in storage or the registry.
// Caller holds the write lock.
func (s *NetworkService) nextID(ctx context.Context) (int, error) {
	maxID, err := s.repo.MaxNetworkID(ctx)
	if err != nil {
		return 0, err
	}
	for _, cfg := range s.reg.ValuesForAllUsers() {
		if cfg.ID > maxID {
			maxID = cfg.ID
		}
	}
	return maxID + 1, nil
}

// Remove deletes a network from storage and from every registry view
func (s *NetworkService) Remove(ctx context.Context, id int) (*domain.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.repo.DeleteNetwork(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, ok := s.reg.Remove(id)
	if !ok && !deleted {
		return nil, fmt.Errorf("network %d: %w", id, ErrNotFound)
	}

	s.eventBus.Publish(Event{
		Type:    EventNetworkRemoved,
		Payload: map[string]int{"id": id},
	})
	return cfg, nil
}

// SwitchUser brings userID to the foreground
func (s *NetworkService) SwitchUser(ctx context.Context, userID int) error {
	s.mu.Lock()
	s.policy.SetForegroundUser(userID)
	s.reg.SetActiveUser(userID)
	current := s.reg.SizeForCurrentUser()
	s.mu.Unlock()

	log.Printf("Switched to user %d (%s, %d networks visible)", userID, s.mode, current)

	s.eventBus.Publish(Event{
		Type:    EventUserSwitched,
		Payload: map[string]interface{}{"user_id": userID, "mode": s.mode},
	})
	return nil
}

// ActiveUser returns the registry's active user
func (s *NetworkService) ActiveUser() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.ActiveUser()
}

// Get returns a network by ID from the requested view
func (s *NetworkService) Get(id int, scope Scope) (*domain.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		cfg *domain.Configuration
		ok  bool
	)
	if scope == ScopeAll {
		cfg, ok = s.reg.GetForAllUsers(id)
	} else {
		cfg, ok = s.reg.GetForCurrentUser(id)
	}
	if !ok {
		return nil, fmt.Errorf("network %d: %w", id, ErrNotFound)
	}
	return cfg, nil
}

// List returns the networks in a view ordered by ID
func (s *NetworkService) List(scope Scope) []*domain.Configuration {
	s.mu.RLock()
	var networks []*domain.Configuration
	if scope == ScopeAll {
		networks = s.reg.ValuesForAllUsers()
	} else {
		networks = s.reg.ValuesForCurrentUser()
	}
	s.mu.RUnlock()

	sort.Slice(networks, func(i, j int) bool { return networks[i].ID < networks[j].ID })
	return networks
}

// Count returns the size of a view
func (s *NetworkService) Count(scope Scope) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if scope == ScopeAll {
		return s.reg.SizeForAllUsers()
	}
	return s.reg.SizeForCurrentUser()
}

// LookupProfileKey finds a current-user network by profile key
func (s *NetworkService) LookupProfileKey(key string) (*domain.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.reg.GetByProfileKeyForCurrentUser(key)
	if !ok {
		return nil, fmt.Errorf("profile key %q: %w", key, ErrNotFound)
	}
	return cfg, nil
}

// MatchScan finds the current-user network matching an observed network
func (s *NetworkService) MatchScan(scan domain.ScanResult) (*domain.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.reg.GetByScanResultForCurrentUser(scan)
	if !ok {
		return nil, fmt.Errorf("scan %s: %w", domain.SignatureFromScan(scan), ErrNotFound)
	}
	return cfg, nil
}

// Import parses networks and stores them. With replace set, every stored
// network is replaced by the imported set; otherwise imported networks are
// upserted by ID. Returns the number of networks imported.
func (s *NetworkService) Import(ctx context.Context, r io.Reader, format string, replace bool) (int, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return 0, err
	}
	networks, err := c.Parse(r)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	next, err := s.nextID(ctx)
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	for _, cfg := range networks {
		if cfg.ID >= next {
			next = cfg.ID + 1
		}
	}
	for _, cfg := range networks {
		if cfg.ID == 0 {
			cfg.ID = next
			next++
		}
	}
	if replace {
		err = s.repo.ReplaceNetworks(ctx, networks)
	} else {
		for _, cfg := range networks {
			if err = s.repo.UpsertNetwork(ctx, cfg); err != nil {
				break
			}
		}
	}
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("store imported networks: %w", err)
	}

	// Reload so the registry reflects exactly what was stored
	if err := s.Load(ctx); err != nil {
		return 0, err
	}

	log.Printf("Imported %d networks (%s, replace=%v)", len(networks), c.Format(), replace)
	return len(networks), nil
}

// ImportFile replaces the stored networks with the contents of path
func (s *NetworkService) ImportFile(ctx context.Context, path, format string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open networks file: %w", err)
	}
	defer f.Close()

	return s.Import(ctx, f, format, true)
}

// Export writes the networks of a view in the given format
func (s *NetworkService) Export(w io.Writer, format string, scope Scope) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	return c.Export(s.List(scope), w)
}

// Dump writes the registry debug dump
func (s *NetworkService) Dump(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := fmt.Fprintf(w, "foregroundUser=%d userSwitch=%s\n", s.policy.ForegroundUser(), s.mode); err != nil {
		return err
	}
	return s.reg.Dump(w)
}
