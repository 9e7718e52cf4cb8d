package netclient

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/w1ncs/netcontrol/internal/feed"
)

// Subscription is a live change-feed connection. Events for the subscribed
// tables are delivered to the handler on a dedicated goroutine until Close
// is called. A screen opens its subscription on mount and closes it on
// navigation; after Close the handler is never invoked again, so a late
// event can never land in a dismantled screen.
type Subscription struct {
	conn    *websocket.Conn
	handler func(feed.Event)

	closeOnce sync.Once
	closed    chan struct{}
}

// Subscribe opens a websocket to the change feed and registers interest in
// the given tables. The handler runs on the subscription's own goroutine,
// one event at a time.
func (c *Client) Subscribe(tables []string, handler func(feed.Event)) (*Subscription, error) {
	wsURL := strings.Replace(c.BaseURL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "could not connect to the change feed: " + err.Error()}
	}

	msg := feed.SubscribeMessage{Type: "subscribe", Tables: tables}
	if err := conn.WriteJSON(msg); err != nil {
		conn.Close()
		return nil, &Error{Kind: KindNetwork, Message: "could not subscribe: " + err.Error()}
	}

	sub := &Subscription{
		conn:    conn,
		handler: handler,
		closed:  make(chan struct{}),
	}
	go sub.readLoop()
	go sub.pingLoop()
	return sub, nil
}

func (s *Subscription) readLoop() {
	defer s.Close()
	for {
		var ev feed.Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			select {
			case <-s.closed:
			default:
				log.Printf("⚠️  Feed: connection lost: %v", err)
			}
			return
		}
		select {
		case <-s.closed:
			return
		default:
			s.handler(ev)
		}
	}
}

func (s *Subscription) pingLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		case <-s.closed:
			return
		}
	}
}

// Close tears the subscription down. Safe to call more than once; after it
// returns no further events are delivered.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.conn.Close()
	})
}
