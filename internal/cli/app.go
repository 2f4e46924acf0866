package cli

import (
	"context"
	"fmt"
	"log"

	"netconfig/internal/config"
	"netconfig/internal/permissions"
	"netconfig/internal/repository/sqlite"
	"netconfig/internal/service"
)

// app bundles what every command needs
type app struct {
	cfg      *config.Config
	repo     *sqlite.Repository
	policy   *permissions.Policy
	eventBus *service.EventBus
	svc      *service.NetworkService
}

// openApp loads configuration, opens the database and loads the registry
func openApp(ctx context.Context, opts *RootOptions) (*app, error) {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Printf("Using config %s", path)
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}
	if opts.User != userUnset {
		cfg.Users.Foreground = opts.User
	}

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	policy := newPolicy(cfg.Users)
	eventBus := service.NewEventBus()
	svc := service.NewNetworkService(repo, policy, eventBus, cfg.Registry.UserSwitch)

	if ctx == nil {
		ctx = context.Background()
	}
	if err := svc.Load(ctx); err != nil {
		repo.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		repo:     repo,
		policy:   policy,
		eventBus: eventBus,
		svc:      svc,
	}, nil
}

func loadConfig(opts *RootOptions) (*config.Config, string, error) {
	if opts.ConfigPath != "" {
		return config.LoadFromPath(opts.ConfigPath)
	}
	return config.Load()
}

// newPolicy builds the permission policy described by the users section
func newPolicy(users config.UsersConfig) *permissions.Policy {
	policy := permissions.NewPolicy(users.PerUserRange)
	policy.SetForegroundUser(users.Foreground)
	for _, uid := range users.DeviceOwnerUIDs {
		policy.AddDeviceOwner(uid)
	}
	for parent, profiles := range users.Profiles {
		policy.SetProfiles(parent, profiles)
	}
	return policy
}

// Close releases the database
func (a *app) Close() error {
	return a.repo.Close()
}
