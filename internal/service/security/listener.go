package security

import (
	"context"
	"image"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

//go:generate mockgen -source=listener.go -destination=mocks/listener.go -package=mocks

// Classifier decides whether a camera frame shows a cat.
type Classifier interface {
	ContainsCat(ctx context.Context, img image.Image, threshold float32) (bool, error)
}

// StatusListener receives state change notifications.
// Notifications are delivered while the service holds its lock, so a listener
// must not call back into the service.
type StatusListener interface {
	// AlarmStatusChanged is called after every alarm status write.
	AlarmStatusChanged(ctx context.Context, status domain.AlarmStatus)
	// CatDetected is called after every processed camera frame.
	CatDetected(ctx context.Context, detected bool)
	// SensorStatusChanged is called after sensors are added, removed or updated.
	SensorStatusChanged(ctx context.Context)
}
