// Package mqtt publishes the security state to an MQTT broker and announces
// it to Home Assistant.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/oshokin/catpoint/internal/config"
)

// Payloads published on state topics.
const (
	PayloadOnline  = "online"
	PayloadOffline = "offline"
	PayloadOn      = "on"
	PayloadOff     = "off"
)

// disconnectQuiesce is how long Disconnect waits for in-flight work.
const disconnectQuiesce = 250 * time.Millisecond

var (
	// errConnectTimeout is returned when the broker does not acknowledge the connection in time.
	errConnectTimeout = errors.New("MQTT connect timed out")
	// errPublishTimeout is returned when a publish is not acknowledged in time.
	errPublishTimeout = errors.New("MQTT publish timed out")
)

// Client is the part of the paho client the publisher uses.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload any) paho.Token
}

// OptionsFromConfig builds client options with an offline last will on the bridge topic.
func OptionsFromConfig(cfg config.MQTTConfig) *paho.ClientOptions {
	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "catpoint_" + uuid.NewString()
	}

	opts.SetClientID(clientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetWill(bridgeStateTopic(cfg.BaseTopic), PayloadOffline, 0, true)

	return opts
}

// Connect dials the broker and waits for the acknowledgement.
func Connect(ctx context.Context, opts *paho.ClientOptions, timeout time.Duration) (paho.Client, error) {
	client := paho.NewClient(opts)

	if err := wait(ctx, client.Connect(), timeout, errConnectTimeout); err != nil {
		return nil, fmt.Errorf("connect to MQTT broker: %w", err)
	}

	return client, nil
}

// Disconnect closes the connection after in-flight messages are sent.
func Disconnect(client paho.Client) {
	client.Disconnect(uint(disconnectQuiesce.Milliseconds()))
}

// wait blocks until the token completes, the timeout elapses or ctx is done.
func wait(ctx context.Context, token paho.Token, timeout time.Duration, timeoutErr error) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-timer.C:
		return timeoutErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func bridgeStateTopic(baseTopic string) string {
	return fmt.Sprintf("%s/bridge/state", baseTopic)
}
