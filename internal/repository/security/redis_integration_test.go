//go:build integration

package security

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/sync/errgroup"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// TestRedisRepository_Contract runs the shared contract against a Redis container.
func TestRedisRepository_Contract(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := DialRedis(ctx, url)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	testRepositoryContract(t, NewRedisRepository(client, WithRedisPrefix("catpoint-test:")))

	t.Run("update never restores a removed sensor", func(t *testing.T) {
		repo := NewRedisRepository(client, WithRedisPrefix("catpoint-race:"))
		sensor := newTestSensor(t, "Front Door", domain.Door)

		require.NoError(t, repo.AddSensor(ctx, sensor))

		var group errgroup.Group

		for i := range 8 {
			group.Go(func() error {
				for j := range 50 {
					sensor := sensor
					sensor.Active = (i+j)%2 == 0

					if err := repo.UpdateSensor(ctx, sensor); err != nil && !errors.Is(err, domain.ErrSensorNotFound) {
						return err
					}
				}

				return nil
			})
		}

		group.Go(func() error {
			return repo.RemoveSensor(ctx, sensor)
		})

		require.NoError(t, group.Wait())

		sensors, err := repo.Sensors(ctx)
		require.NoError(t, err)
		require.Empty(t, sensors)

		require.ErrorIs(t, repo.UpdateSensor(ctx, sensor), domain.ErrSensorNotFound)
	})
}
