// Package control carries parameter changes from a control goroutine into a
// real-time render callback.
//
// The channel is single-producer, single-consumer. The producer may block
// on its own input freely; nothing on the consumer side ever blocks.
// Pending messages are coalesced: if the producer sends again before the
// consumer has drained, the newer message replaces the older one, so the
// consumer always applies the latest command within one callback.
package control

import (
	"errors"
	"strings"
	"sync"
)

// ErrClosed is returned by Send once either side has hung up.
var ErrClosed = errors.New("control: channel closed")

// Message is a tokenized command line. Tokens[0] names the command.
type Message struct {
	Tokens []string
}

// Parse splits a command line on whitespace. Blank lines report false.
func Parse(line string) (Message, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Message{}, false
	}
	return Message{Tokens: tokens}, true
}

// Command returns the first token, or "" for an empty message.
func (m Message) Command() string {
	if len(m.Tokens) == 0 {
		return ""
	}
	return m.Tokens[0]
}

// Arg returns token i+1, the i-th argument after the command.
func (m Message) Arg(i int) (string, bool) {
	if i < 0 || i+1 >= len(m.Tokens) {
		return "", false
	}
	return m.Tokens[i+1], true
}

// Status is the outcome of a TryReceive.
type Status int

const (
	// Empty means no message is pending.
	Empty Status = iota

	// Received means a message was returned.
	Received

	// Closed means the producer hung up and nothing is pending.
	Closed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Empty:
		return "empty"
	case Received:
		return "received"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Channel is the one-way path from control to render.
type Channel struct {
	pending chan Message  // Capacity one: the latest undelivered message
	hangup  chan struct{} // Closed by the producer
	detach  chan struct{} // Closed by the consumer

	sendMu     sync.Mutex // Serializes replace-on-full in Send
	closeOnce  sync.Once
	detachOnce sync.Once
}

// New creates an open channel.
func New() *Channel {
	return &Channel{
		pending: make(chan Message, 1),
		hangup:  make(chan struct{}),
		detach:  make(chan struct{}),
	}
}

// Send delivers msg without blocking the consumer. A message still pending
// from an earlier Send is replaced. Send fails with ErrClosed after Close
// or Detach.
func (c *Channel) Send(msg Message) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	select {
	case <-c.hangup:
		return ErrClosed
	case <-c.detach:
		return ErrClosed
	default:
	}

	for {
		select {
		case c.pending <- msg:
			return nil
		default:
		}

		// Full: drop the stale message. The consumer may have taken it in
		// the meantime, in which case the next attempt succeeds.
		select {
		case <-c.pending:
		default:
		}
	}
}

// SendLine parses line and sends it. Blank lines are ignored.
func (c *Channel) SendLine(line string) error {
	msg, ok := Parse(line)
	if !ok {
		return nil
	}
	return c.Send(msg)
}

// TryReceive returns the pending message, if any, without blocking or
// allocating. After Close, a message sent before the hang-up is still
// delivered; Closed is reported once nothing is left.
func (c *Channel) TryReceive() (Message, Status) {
	select {
	case msg := <-c.pending:
		return msg, Received
	default:
	}

	select {
	case <-c.hangup:
		// A Send may have raced with Close; drain it first.
		select {
		case msg := <-c.pending:
			return msg, Received
		default:
		}
		return Message{}, Closed
	default:
		return Message{}, Empty
	}
}

// Close is called by the producer when no more commands will follow.
func (c *Channel) Close() {
	c.closeOnce.Do(func() { close(c.hangup) })
}

// Detach is called by the consumer when it stops rendering. Later sends
// fail with ErrClosed.
func (c *Channel) Detach() {
	c.detachOnce.Do(func() { close(c.detach) })
}

// Detached returns a channel closed once the consumer has detached.
func (c *Channel) Detached() <-chan struct{} {
	return c.detach
}
