package trash

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// Manager wires the locator, the engine and the guard together
type Manager struct {
	config   Config
	registry *Registry
	locator  *Locator
	engine   *Engine
	guard    *Guard
}

// NewManager initializes the home trash, probes the mount table and
// returns a Manager ready to trash files
func NewManager(cfg Config, opts ...EngineOption) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	home, err := Init(cfg.HomeTrashDir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize home trash: %w", err)
	}

	// the mount table lists resolved paths
	if resolved, err := filepath.EvalSymlinks(home.Root); err == nil && resolved != home.Root {
		if home, err = FromRoot(resolved); err != nil {
			return nil, err
		}
	}

	registry, err := Probe(cfg.MountTable)
	if err != nil {
		return nil, err
	}

	locator, err := NewLocator(home, registry, cfg.UID)
	if err != nil {
		return nil, err
	}

	guard, err := NewGuard(cfg.Guard)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("trash manager ready",
		"home", home.Root,
		"mountpoints", len(registry.MountPoints()),
		"uid", cfg.UID)

	return &Manager{
		config:   cfg,
		registry: registry,
		locator:  locator,
		engine:   NewEngine(opts...),
		guard:    guard,
	}, nil
}

// Put sends src to the trash it belongs to
func (m *Manager) Put(src string) (*TrashedEntry, error) {
	path, err := Normalize(src)
	if err != nil {
		return nil, err
	}

	if err := m.guard.Check(path); err != nil {
		return nil, err
	}

	d, err := m.locator.Locate(path)
	if err != nil {
		return nil, err
	}

	return m.engine.SendToTrash(d, path)
}

// Registry returns the probed mount points
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Home returns the home trash
func (m *Manager) Home() *Directory {
	return m.locator.Home()
}

// Normalize makes src absolute and resolves symlinks in its parent
// directories. The last component is kept as is so a symlink is trashed
// as a symlink rather than its target.
func Normalize(src string) (string, error) {
	if err := checkEncoding(src); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(src)
	if err != nil {
		return "", NewStorageError("abs", src, err)
	}

	dir, name := filepath.Split(abs)
	if name == "" {
		return abs, nil
	}

	parent, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", NewStorageError("resolve", dir, err)
	}
	return filepath.Join(parent, name), nil
}
