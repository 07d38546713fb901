package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/ayaled/internal/logic"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// RealPublisher publishes to an actual MQTT broker. Messages published while
// the connection is down are queued and replayed on reconnect.
type RealPublisher struct {
	client paho.Client
	themes ThemeSetter

	mu     sync.Mutex
	outbox *outbox
}

// NewRealPublisher creates a publisher for broker. The will message marks the
// daemon OFFLINE if it disappears without a SHUTDOWN. If themes is non-nil,
// theme commands on TopicThemeSet are applied to it.
//
// The connection is retried in the background; a slow broker does not fail
// startup.
func NewRealPublisher(broker string, themes ThemeSetter) (*RealPublisher, error) {
	will, err := FormatSystemPayload(SystemEvent{Event: "OFFLINE"})
	if err != nil {
		return nil, fmt.Errorf("format will: %w", err)
	}

	p := newRealPublisher(themes)

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("ayaled").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(TopicSystem, string(will), 1, true).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		log.Printf("mqtt: broker %s not reachable yet, retrying in background", broker)
		return p, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return p, nil
}

func newRealPublisher(themes ThemeSetter) *RealPublisher {
	return &RealPublisher{
		themes: themes,
		outbox: newOutbox(DefaultOutboxSize),
	}
}

// onConnect resubscribes and replays the outbox. The replay holds p.mu so a
// concurrent send either queues before the drain or sees the open connection.
func (p *RealPublisher) onConnect(c paho.Client) {
	log.Printf("mqtt: connected")
	if p.themes != nil {
		c.Subscribe(TopicThemeSet, 1, p.handleTheme)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	msgs, dropped := p.outbox.drain()
	if dropped > 0 {
		log.Printf("mqtt: %d queued messages were dropped while offline", dropped)
	}
	for _, m := range msgs {
		c.Publish(m.topic, m.qos, m.retained, m.payload)
	}
	if len(msgs) > 0 {
		log.Printf("mqtt: replayed %d queued messages", len(msgs))
	}
}

func (p *RealPublisher) handleTheme(_ paho.Client, msg paho.Message) {
	applyTheme(p.themes, msg.Topic(), msg.Payload())
}

// applyTheme parses a theme command and stores it. Bad commands are logged.
func applyTheme(themes ThemeSetter, topic string, payload []byte) {
	slot, c, err := ParseThemeCommand(topic, payload)
	if err != nil {
		log.Printf("mqtt: ignoring theme command on %s: %v", topic, err)
		return
	}
	if err := themes.Set(slot, c); err != nil {
		log.Printf("mqtt: ignoring theme command: %v", err)
		return
	}
	log.Printf("mqtt: theme %s = %v", slot, c)
}

// Publish sends an LED write event to the MQTT broker.
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	// QoS 0 (at-most-once), not retained
	return p.send(pending{topic: Topic, payload: payload})
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 for lifecycle events
	return p.send(pending{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
}

func (p *RealPublisher) send(m pending) error {
	p.mu.Lock()
	if !p.client.IsConnectionOpen() {
		p.outbox.push(m)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	token := p.client.Publish(m.topic, m.qos, m.retained, m.payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s timeout", m.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", m.topic, err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
