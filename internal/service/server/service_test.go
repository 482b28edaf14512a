package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/catpoint/internal/config"
	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/imaging"
	repo "github.com/oshokin/catpoint/internal/repository/security"
	"github.com/oshokin/catpoint/internal/service/common"
)

// testSettings returns validated settings for the provided backend.
func testSettings(t *testing.T, backend string) *config.Config {
	t.Helper()

	settings := &config.Config{
		ServerAddress: "127.0.0.1:0",
		Timeout:       time.Second,
		Storage: config.StorageConfig{
			Backend:   backend,
			StateFile: filepath.Join(t.TempDir(), config.DefaultStateFilename),
		},
	}
	require.NoError(t, config.Validate(settings))

	return settings
}

// TestResolveListenAddress covers overrides, port extraction and invalid input.
func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	address, err := resolveListenAddress("alarm.local:8080", "")
	require.NoError(t, err)
	require.Equal(t, ":8080", address)

	address, err = resolveListenAddress("alarm.local:8080", "127.0.0.1:9090")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", address)

	_, err = resolveListenAddress("", "")
	require.ErrorIs(t, err, ErrNoServerAddress)

	_, err = resolveListenAddress("no-port", "")
	require.Error(t, err)
}

// TestOpenRepository verifies backends are selected from settings.
func TestOpenRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &components{}

	repository, err := c.openRepository(ctx, testSettings(t, config.BackendMemory).Storage)
	require.NoError(t, err)
	require.IsType(t, &repo.MemoryRepository{}, repository)

	storage := testSettings(t, config.BackendFile).Storage
	repository, err = c.openRepository(ctx, storage)
	require.NoError(t, err)

	fileRepository, ok := repository.(*repo.FileRepository)
	require.True(t, ok)
	require.Equal(t, storage.StateFile, fileRepository.Path())

	_, err = c.openRepository(ctx, config.StorageConfig{Backend: config.BackendRedis, RedisURL: "not a url"})
	require.Error(t, err)
	require.Empty(t, c.closers)
}

// TestNewClassifier verifies the classifier follows the camera settings.
func TestNewClassifier(t *testing.T) {
	t.Parallel()

	require.IsType(t, &imaging.HeuristicClassifier{}, newClassifier(config.CameraConfig{Classifier: config.ClassifierHeuristic}))
	require.IsType(t, &imaging.FakeClassifier{}, newClassifier(config.CameraConfig{Classifier: config.ClassifierFake}))
}

// TestServe runs both servers on ephemeral ports and drives them through the client.
func TestServe(t *testing.T) {
	t.Parallel()

	settings := testSettings(t, config.BackendFile)

	grpcListener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	httpListener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- serve(ctx, settings, grpcListener, httpListener)
	}()

	client, err := common.Dial(ctx, grpcListener.Addr().String(), common.WithActor("tester@localhost"))
	require.NoError(t, err)

	defer func() { _ = client.Close() }()

	_, err = client.AddSensor(ctx, domain.SensorKey{Name: "Front Door", Type: domain.Door})
	require.NoError(t, err)

	snapshot, err := client.SetArmingStatus(ctx, domain.ArmedAway)
	require.NoError(t, err)
	require.Equal(t, domain.ArmedAway, snapshot.ArmingStatus)

	snapshot, err = client.ChangeSensorActivation(ctx, domain.SensorKey{Name: "Front Door", Type: domain.Door}, true)
	require.NoError(t, err)
	require.Equal(t, domain.PendingAlarm, snapshot.AlarmStatus)

	resp, err := http.Get("http://" + httpListener.Addr().String() + "/metrics") //nolint:noctx // Test request.
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-done)

	// The file backend kept the state.
	contents, err := os.ReadFile(settings.Storage.StateFile)
	require.NoError(t, err)
	require.Contains(t, string(contents), "PENDING_ALARM")
	require.Contains(t, string(contents), "Front Door")
}
