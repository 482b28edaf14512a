package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// DefaultRedisPrefix is prepended to every key written by RedisRepository.
const DefaultRedisPrefix = "catpoint:"

// Redis key suffixes.
const (
	redisSensorsKey      = "sensors"
	redisAlarmStatusKey  = "alarm_status"
	redisArmingStatusKey = "arming_status"
)

// RedisRepository stores the security state in Redis.
// Sensors live in a hash keyed by "TYPE:name"; statuses are plain strings.
type RedisRepository struct {
	// client is the shared go-redis client.
	client redis.UniversalClient
	// prefix namespaces the keys.
	prefix string
}

// RedisOption configures a RedisRepository.
type RedisOption func(*RedisRepository)

// WithRedisPrefix overrides the key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(r *RedisRepository) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// redisSensor is the JSON form of a sensor inside the hash.
type redisSensor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

// NewRedisRepository creates a repository on top of an existing client.
func NewRedisRepository(client redis.UniversalClient, opts ...RedisOption) *RedisRepository {
	r := &RedisRepository{
		client: client,
		prefix: DefaultRedisPrefix,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// DialRedis parses url, connects and pings the server.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// Sensors returns every registered sensor ordered by name and type.
func (r *RedisRepository) Sensors(ctx context.Context) ([]domain.Sensor, error) {
	values, err := r.client.HGetAll(ctx, r.key(redisSensorsKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("read sensors: %w", err)
	}

	sensors := make([]domain.Sensor, 0, len(values))

	for field, value := range values {
		sensor, err := decodeRedisSensor(value)
		if err != nil {
			return nil, fmt.Errorf("decode sensor %s: %w", field, err)
		}

		sensors = append(sensors, sensor)
	}

	domain.SortSensors(sensors)

	return sensors, nil
}

// AddSensor registers a sensor unless one with the same key exists.
func (r *RedisRepository) AddSensor(ctx context.Context, sensor domain.Sensor) error {
	value, err := encodeRedisSensor(sensor)
	if err != nil {
		return err
	}

	if err = r.client.HSetNX(ctx, r.key(redisSensorsKey), sensor.Key().String(), value).Err(); err != nil {
		return fmt.Errorf("add sensor: %w", err)
	}

	return nil
}

// RemoveSensor unregisters a sensor.
func (r *RedisRepository) RemoveSensor(ctx context.Context, sensor domain.Sensor) error {
	if err := r.client.HDel(ctx, r.key(redisSensorsKey), sensor.Key().String()).Err(); err != nil {
		return fmt.Errorf("remove sensor: %w", err)
	}

	return nil
}

// updateSensorScript overwrites a hash field only when it already exists.
//
//nolint:gochecknoglobals // Compiled once and shared by every repository.
var updateSensorScript = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
return 1
`)

// UpdateSensor replaces a registered sensor. The existence check and the write
// run as one script, so a concurrent RemoveSensor cannot be undone.
func (r *RedisRepository) UpdateSensor(ctx context.Context, sensor domain.Sensor) error {
	value, err := encodeRedisSensor(sensor)
	if err != nil {
		return err
	}

	updated, err := updateSensorScript.Run(
		ctx,
		r.client,
		[]string{r.key(redisSensorsKey)},
		sensor.Key().String(),
		value,
	).Int()
	if err != nil {
		return fmt.Errorf("update sensor: %w", err)
	}

	if updated == 0 {
		return domain.ErrSensorNotFound
	}

	return nil
}

// AlarmStatus returns the stored alarm status.
func (r *RedisRepository) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	value, err := r.client.Get(ctx, r.key(redisAlarmStatusKey)).Result()
	if errors.Is(err, redis.Nil) {
		return DefaultAlarmStatus, nil
	}

	if err != nil {
		return "", fmt.Errorf("read alarm status: %w", err)
	}

	return domain.ParseAlarmStatus(value)
}

// SetAlarmStatus stores the alarm status.
func (r *RedisRepository) SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	if err := r.client.Set(ctx, r.key(redisAlarmStatusKey), status.String(), 0).Err(); err != nil {
		return fmt.Errorf("write alarm status: %w", err)
	}

	return nil
}

// ArmingStatus returns the stored arming status.
func (r *RedisRepository) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	value, err := r.client.Get(ctx, r.key(redisArmingStatusKey)).Result()
	if errors.Is(err, redis.Nil) {
		return DefaultArmingStatus, nil
	}

	if err != nil {
		return "", fmt.Errorf("read arming status: %w", err)
	}

	return domain.ParseArmingStatus(value)
}

// SetArmingStatus stores the arming status.
func (r *RedisRepository) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	if err := r.client.Set(ctx, r.key(redisArmingStatusKey), status.String(), 0).Err(); err != nil {
		return fmt.Errorf("write arming status: %w", err)
	}

	return nil
}

// key namespaces a key with the configured prefix.
func (r *RedisRepository) key(suffix string) string {
	return r.prefix + suffix
}

// encodeRedisSensor converts a sensor into its hash value.
func encodeRedisSensor(sensor domain.Sensor) (string, error) {
	data, err := json.Marshal(redisSensor{
		ID:     sensor.ID.String(),
		Name:   sensor.Name,
		Type:   sensor.Type.String(),
		Active: sensor.Active,
	})
	if err != nil {
		return "", fmt.Errorf("encode sensor: %w", err)
	}

	return string(data), nil
}

// decodeRedisSensor converts a hash value into a sensor.
func decodeRedisSensor(value string) (domain.Sensor, error) {
	var stored redisSensor
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return domain.Sensor{}, err
	}

	sensorType, err := domain.ParseSensorType(stored.Type)
	if err != nil {
		return domain.Sensor{}, err
	}

	id, err := uuid.Parse(stored.ID)
	if err != nil {
		id = uuid.New()
	}

	return domain.Sensor{
		ID:     id,
		Name:   stored.Name,
		Type:   sensorType,
		Active: stored.Active,
	}, nil
}
