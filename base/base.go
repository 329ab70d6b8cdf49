package base

import (
	"errors"
	"fmt"
	"log"
	"net"

	"golang.org/x/net/netutil"
)

type BaseServer struct {
	Maxconn int
	Logger  *log.Logger // nil means log.Default()
}

// Listen binds addr and serves connections on it until the listener fails.
func (b *BaseServer) Listen(addr string, handler func(net.Conn)) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen to %s: %w", addr, err)
	}
	defer l.Close()

	return b.Serve(l, handler)
}

// Serve accepts connections from l and runs handler for each one on its own
// goroutine. At most Maxconn connections are held at once; further clients
// wait in the kernel backlog. Serve returns nil once l is closed.
func (b *BaseServer) Serve(l net.Listener, handler func(net.Conn)) error {
	if b.Maxconn < 1 {
		return fmt.Errorf("maxconn must be positive, got %d", b.Maxconn)
	}
	l = netutil.LimitListener(l, b.Maxconn)

	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			b.logger().Println("accept error:", err)
			continue // do not stop server on accept error
		}

		go b.run(conn, handler)
	}
}

func (b *BaseServer) run(conn net.Conn, handler func(net.Conn)) {
	defer func() { // a panicking handler must not take down the acceptor
		if r := recover(); r != nil {
			b.logger().Printf("handler panic for %s: %v", conn.RemoteAddr(), r)
			conn.Close()
		}
	}()
	handler(conn)
}

func (b *BaseServer) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}
