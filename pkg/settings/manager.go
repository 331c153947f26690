package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/confidence"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/logging"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/messagebus"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ErrProviderNotFound is returned when no provider has the requested id.
var ErrProviderNotFound = errors.New("provider not found")

const busSender = "settings"

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger types.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMessageBus publishes CONFIGURATION_CHANGED on bus after every change.
func WithMessageBus(bus *messagebus.Bus) Option {
	return func(m *Manager) {
		m.bus = bus
	}
}

// Manager owns the settings file. Reads are lock-free snapshots; writers are
// serialised and replace the whole aggregate.
type Manager struct {
	path   string
	format Format
	logger types.Logger
	bus    *messagebus.Bus

	data    atomic.Pointer[Data]
	writeMu sync.Mutex

	subMu       sync.RWMutex
	subscribers map[uint64]func(*Data)
	nextSub     uint64
}

// NewManager creates a manager for the settings file at path. The file
// format follows the extension. Nothing is read until Load.
func NewManager(path string, opts ...Option) (*Manager, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings path: %w", err)
	}

	m := &Manager{
		path:        abs,
		format:      format,
		logger:      logging.Nop(),
		subscribers: make(map[uint64]func(*Data)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.data.Store(Default())
	return m, nil
}

// Path returns the absolute path of the settings file.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the settings file, migrating and re-saving it when it is older
// than CurrentVersion. A missing file yields the defaults.
func (m *Manager) Load() error {
	m.writeMu.Lock()

	d, migrated, err := m.read()
	if errors.Is(err, os.ErrNotExist) {
		m.logger.Info("No settings file found, using defaults", "path", m.path)
		d = Default()
		err = nil
	}
	if err != nil {
		m.writeMu.Unlock()
		return err
	}

	if migrated {
		m.logger.Info("Settings migrated", "path", m.path, "version", string(d.Version))
		if err := m.persist(d); err != nil {
			m.writeMu.Unlock()
			return err
		}
	}
	m.data.Store(d)
	m.writeMu.Unlock()

	m.notify(d)
	return nil
}

func (m *Manager) read() (*Data, bool, error) {
	raw, err := os.ReadFile(m.path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read settings: %w", err)
	}
	d, err := Decode(m.format, raw)
	if err != nil {
		return nil, false, err
	}
	migrated, err := Migrate(d)
	if err != nil {
		return nil, false, err
	}
	return d, migrated, nil
}

// Save writes the current settings to disk.
func (m *Manager) Save() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.persist(m.data.Load())
}

// persist writes d atomically: a temp file in the same directory renamed
// over the target.
func (m *Manager) persist(d *Data) error {
	raw, err := Encode(m.format, d)
	if err != nil {
		return err
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(m.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close settings: %w", err)
	}
	if err := os.Rename(tmpName, m.path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of the current settings.
func (m *Manager) Snapshot() *Data {
	return m.data.Load().Clone()
}

// Update applies fn to a copy of the settings, saves the result and then
// publishes it. Nothing changes when fn or the save fails.
func (m *Manager) Update(fn func(*Data) error) error {
	m.writeMu.Lock()
	next := m.data.Load().Clone()
	if err := fn(next); err != nil {
		m.writeMu.Unlock()
		return err
	}
	if err := m.persist(next); err != nil {
		m.writeMu.Unlock()
		return err
	}
	m.data.Store(next)
	m.writeMu.Unlock()

	m.notify(next)
	return nil
}

// Subscribe registers fn to receive a snapshot after every change. Returns
// an unsubscribe function.
func (m *Manager) Subscribe(fn func(*Data)) func() {
	m.subMu.Lock()
	m.nextSub++
	id := m.nextSub
	m.subscribers[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subscribers, id)
		m.subMu.Unlock()
	}
}

func (m *Manager) notify(d *Data) {
	m.subMu.RLock()
	subs := make([]func(*Data), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.subMu.RUnlock()

	for _, fn := range subs {
		fn(d.Clone())
	}
	if m.bus != nil {
		m.bus.SendMessage(busSender, messagebus.EventConfigurationChanged, nil)
	}
}

// AddProvider stores a new provider entry. It assigns the next provider
// number and, when missing, a fresh id.
func (m *Manager) AddProvider(config types.ProviderConfig) (types.ProviderConfig, error) {
	err := m.Update(func(d *Data) error {
		config.Num = d.NextProviderNum
		d.NextProviderNum++
		if config.ID == "" {
			config.ID = uuid.NewString()
		}
		if config.Type == types.ProviderTypeSelfHosted {
			config.IsSelfHosted = true
		} else if config.Host == "" {
			config.Host = types.HostNone
		}
		d.Providers = append(d.Providers, config)
		return nil
	})
	if err != nil {
		return types.ProviderConfig{}, err
	}
	m.logger.Info("Provider added", "id", config.ID, "num", config.Num, "provider_type", string(config.Type), "instance", config.InstanceName)
	return config, nil
}

// RemoveProvider deletes the provider with the given id.
func (m *Manager) RemoveProvider(id string) error {
	return m.Update(func(d *Data) error {
		for i, p := range d.Providers {
			if p.ID == id {
				d.Providers = append(d.Providers[:i], d.Providers[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrProviderNotFound, id)
	})
}

// ProviderByID returns the provider with the given id.
func (m *Manager) ProviderByID(id string) (types.ProviderConfig, bool) {
	return m.data.Load().Provider(id)
}

// ConfiguredConfidenceLevel returns the level the active confidence scheme
// assigns to t.
func (m *Manager) ConfiguredConfidenceLevel(t types.ProviderType) confidence.Level {
	return m.data.Load().ConfidenceLevel(t)
}

// InjectSpellchecking sets the "spellcheck" attribute of an input element
// from the settings. A nil map is allocated.
func (m *Manager) InjectSpellchecking(attributes map[string]any) map[string]any {
	if attributes == nil {
		attributes = make(map[string]any)
	}
	if m.data.Load().EnableSpellchecking {
		attributes["spellcheck"] = "true"
	} else {
		attributes["spellcheck"] = "false"
	}
	return attributes
}

// Watch reloads the settings whenever the file is changed on disk, until ctx
// is done. The watch is set up before Watch returns.
func (m *Manager) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}
	// Watch the directory; editors and our own saves replace the file
	if err := w.Add(filepath.Dir(m.path)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch settings directory: %w", err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != m.path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					m.reload()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				m.logger.Warn("Settings watcher error", "error", err)
			}
		}
	}()
	return nil
}

// reload re-reads the file and publishes it when it differs from memory.
func (m *Manager) reload() {
	m.writeMu.Lock()
	d, _, err := m.read()
	if err != nil {
		m.writeMu.Unlock()
		// Partial writes by editors are common; the next event retries
		m.logger.Debug("Ignoring unreadable settings file", "path", m.path, "error", err)
		return
	}
	if reflect.DeepEqual(d, m.data.Load()) {
		m.writeMu.Unlock()
		return
	}
	m.data.Store(d)
	m.writeMu.Unlock()

	m.logger.Info("Settings reloaded", "path", m.path)
	m.notify(d)
}
