package security

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/catpoint/internal/config"
	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// FileRepository persists the security state to a JSON file on disk.
// The state is kept in memory and the whole document is rewritten on every
// change. JSON is produced and consumed via protojson over structpb values.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// state is the in-memory copy of the document.
	state *MemoryRepository
	// mu serializes writes so the file always matches the latest change.
	mu sync.Mutex
}

// OpenFileRepository creates a repository backed by the file at path, loading
// the existing document if there is one.
func OpenFileRepository(ctx context.Context, path string) (*FileRepository, error) {
	r := &FileRepository{
		path:  filepath.Clean(path),
		state: NewMemoryRepository(),
	}

	if err := r.load(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

// Path returns the location of the state file.
func (r *FileRepository) Path() string {
	return r.path
}

// Sensors returns every registered sensor ordered by name and type.
func (r *FileRepository) Sensors(ctx context.Context) ([]domain.Sensor, error) {
	return r.state.Sensors(ctx)
}

// AddSensor registers a sensor and saves the document.
func (r *FileRepository) AddSensor(ctx context.Context, sensor domain.Sensor) error {
	return r.mutate(ctx, func(staged *MemoryRepository) error {
		return staged.AddSensor(ctx, sensor)
	})
}

// RemoveSensor unregisters a sensor and saves the document.
func (r *FileRepository) RemoveSensor(ctx context.Context, sensor domain.Sensor) error {
	return r.mutate(ctx, func(staged *MemoryRepository) error {
		return staged.RemoveSensor(ctx, sensor)
	})
}

// UpdateSensor replaces a registered sensor and saves the document.
func (r *FileRepository) UpdateSensor(ctx context.Context, sensor domain.Sensor) error {
	return r.mutate(ctx, func(staged *MemoryRepository) error {
		return staged.UpdateSensor(ctx, sensor)
	})
}

// AlarmStatus returns the stored alarm status.
func (r *FileRepository) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	return r.state.AlarmStatus(ctx)
}

// SetAlarmStatus stores the alarm status and saves the document.
func (r *FileRepository) SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	return r.mutate(ctx, func(staged *MemoryRepository) error {
		return staged.SetAlarmStatus(ctx, status)
	})
}

// ArmingStatus returns the stored arming status.
func (r *FileRepository) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	return r.state.ArmingStatus(ctx)
}

// SetArmingStatus stores the arming status and saves the document.
func (r *FileRepository) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	return r.mutate(ctx, func(staged *MemoryRepository) error {
		return staged.SetArmingStatus(ctx, status)
	})
}

// mutate applies change to a copy of the state, writes the copy to disk and
// only then makes it visible. A failed change or write leaves the state as it was.
func (r *FileRepository) mutate(_ context.Context, change func(staged *MemoryRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.mu.RLock()
	current := r.state.document()
	r.state.mu.RUnlock()

	staged := NewMemoryRepository()
	staged.restore(current)

	if err := change(staged); err != nil {
		return err
	}

	doc := staged.document()

	data, err := marshalDocument(doc)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err = r.write(data); err != nil {
		return err
	}

	r.state.mu.Lock()
	r.state.restore(doc)
	r.state.mu.Unlock()

	return nil
}

// write replaces the state file through a temporary file in the same directory.
func (r *FileRepository) write(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpPath)
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write state file: %w", err)
	}

	if err = tmp.Chmod(config.DefaultFilePermissions); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write state file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	if err = os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// load reads the document from disk. A missing file leaves the defaults.
func (r *FileRepository) load(_ context.Context) error {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("read state file: %w", err)
	}

	doc, err := unmarshalDocument(contents)
	if err != nil {
		return fmt.Errorf("load state file %s: %w", r.path, err)
	}

	r.state.mu.Lock()
	r.state.restore(doc)
	r.state.mu.Unlock()

	return nil
}
