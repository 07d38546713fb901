package mqtt

import "log"

// DefaultOutboxSize is how many messages are held while the broker is
// unreachable.
const DefaultOutboxSize = 100

// pending is a serialized message waiting for the broker.
type pending struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// outbox is a fixed-capacity FIFO that drops the oldest message when full.
// Retained messages on the same topic replace each other, so only the latest
// lifecycle state is replayed. Callers must synchronize.
type outbox struct {
	msgs    []pending
	size    int
	dropped int
}

func newOutbox(size int) *outbox {
	if size <= 0 {
		size = DefaultOutboxSize
	}
	return &outbox{size: size}
}

func (o *outbox) push(m pending) {
	if m.retained {
		for i := range o.msgs {
			if o.msgs[i].retained && o.msgs[i].topic == m.topic {
				o.msgs = append(o.msgs[:i], o.msgs[i+1:]...)
				break
			}
		}
	}
	if len(o.msgs) == o.size {
		if o.dropped == 0 {
			log.Printf("mqtt: outbox full (%d messages), dropping oldest", o.size)
		}
		o.dropped++
		o.msgs = o.msgs[1:]
	}
	o.msgs = append(o.msgs, m)
}

// drain returns queued messages oldest first and the number dropped since the
// last drain, then empties the outbox.
func (o *outbox) drain() ([]pending, int) {
	msgs, dropped := o.msgs, o.dropped
	o.msgs, o.dropped = nil, 0
	return msgs, dropped
}

func (o *outbox) len() int {
	return len(o.msgs)
}
