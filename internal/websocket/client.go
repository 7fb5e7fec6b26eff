package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	eventBuffer   = 16
	pingEvery     = 30 * time.Second
	writeDeadline = 5 * time.Second
)

// Client is one subscriber connection. The stream is one-way: the server
// pushes events, inbound frames are drained and ignored.
type Client struct {
	hub    *Hub
	conn   *ws.Conn
	events chan []byte
}

func newClient(hub *Hub, conn *ws.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		events: make(chan []byte, eventBuffer),
	}
}

// run registers the client with the hub and blocks until the connection
// drops. The event writer runs in its own goroutine; the read loop here only
// exists to notice the peer going away.
func (c *Client) run(ctx context.Context) {
	c.hub.register(c)
	defer c.hub.unregister(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.pushEvents(ctx)

	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			return
		}
	}
}

// pushEvents drains the event channel onto the wire, pinging between events
// to detect dead peers. Each write gets its own deadline so one stalled
// client cannot wedge the goroutine.
func (c *Client) pushEvents(ctx context.Context) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.events:
			if !ok {
				return
			}
			if err := c.write(ctx, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeDeadline)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, msg)
}
