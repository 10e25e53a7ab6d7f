package ipc

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"os"
	"sync"
)

// Server listens on a Unix domain socket, accepting i3-ipc clients that
// send command strings and subscribe to events.
type Server struct {
	addr     string
	executor *Executor
	treeFn   func() interface{}

	listener net.Listener
	quit     chan struct{}
	wg       sync.WaitGroup

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	conn   net.Conn
	events map[string]bool
	mu     sync.Mutex
}

// NewServer wires a Server to the executor it dispatches commands to and a
// closure producing the current tree for GET_TREE requests.
func NewServer(addr string, executor *Executor, treeFn func() interface{}) *Server {
	return &Server{
		addr:        addr,
		executor:    executor,
		treeFn:      treeFn,
		quit:        make(chan struct{}),
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Start removes any stale socket at addr, binds a fresh listener, and spawns
// the accept loop.
func (s *Server) Start() error {
	if err := os.RemoveAll(s.addr); err != nil {
		return err
	}
	l, err := net.Listen("unix", s.addr)
	if err != nil {
		return err
	}
	s.listener = l
	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			defer c.Close()
			s.serve(c)
		}(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	sub := &subscriber{conn: conn, events: make(map[string]bool)}
	defer s.removeSubscriber(sub)

	for {
		t, payload, err := ReadMessage(conn)
		if err != nil {
			return
		}
		switch t {
		case TypeRunCommand:
			results := s.executor.Run(string(payload))
			reply, _ := json.Marshal(results)
			if err := WriteMessage(conn, t, reply); err != nil {
				return
			}
		case TypeGetTree:
			reply, _ := json.Marshal(s.treeFn())
			if err := WriteMessage(conn, t, reply); err != nil {
				return
			}
		case TypeSubscribe:
			var events []string
			if err := json.Unmarshal(payload, &events); err != nil {
				ack, _ := json.Marshal(IpcValidationResult{Success: false, Error: "subscribe: malformed event list"})
				_ = WriteMessage(conn, t, ack)
				continue
			}
			sub.mu.Lock()
			for _, ev := range events {
				sub.events[ev] = true
			}
			sub.mu.Unlock()
			s.addSubscriber(sub)
			ack, _ := json.Marshal(IpcValidationResult{Success: true})
			if err := WriteMessage(conn, t, ack); err != nil {
				return
			}
		default:
			ack, _ := json.Marshal(IpcValidationResult{Success: false, Error: "unsupported message type"})
			if err := WriteMessage(conn, t, ack); err != nil {
				return
			}
		}
	}
}

func (s *Server) addSubscriber(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[sub] = struct{}{}
}

func (s *Server) removeSubscriber(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, sub)
}

// Publish fans event out to every subscriber registered for it, setting the
// high bit on the reply type per the event wire convention. A failed write
// is logged and the subscriber stays registered; the next read on its
// connection, in the per-connection goroutine running serve, observes the
// error and removes it.
func (s *Server) Publish(event string, t Type, payload []byte) {
	s.mu.Lock()
	targets := make([]*subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		sub.mu.Lock()
		if sub.events[event] {
			targets = append(targets, sub)
		}
		sub.mu.Unlock()
	}
	s.mu.Unlock()

	for _, sub := range targets {
		sub.mu.Lock()
		err := WriteMessage(sub.conn, t|EventBit, payload)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("ipc: publish %s failed: %v", event, err)
		}
	}
}

// Stop closes the listener and every subscriber connection, then waits for
// all in-flight connection goroutines to finish or ctx to expire. Callers
// stop the animation ticker before calling Stop and detach containers only
// after Stop returns.
func (s *Server) Stop(ctx context.Context) error {
	close(s.quit)
	if s.listener != nil {
		_ = s.listener.Close()
	}

	s.mu.Lock()
	for sub := range s.subscribers {
		_ = sub.conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
