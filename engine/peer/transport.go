package peer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// lineConn reads lines from the stream on a single goroutine and hands them
// over a channel, so a blocked read can be abandoned through a context.
type lineConn struct {
	rw    io.ReadWriteCloser
	lines chan string
	done  chan struct{}

	errMu   sync.Mutex
	readErr error

	writeMu sync.Mutex
	w       *bufio.Writer

	closeOnce sync.Once
}

func newLineConn(rw io.ReadWriteCloser) *lineConn {
	c := &lineConn{
		rw:    rw,
		lines: make(chan string, 8),
		done:  make(chan struct{}),
		w:     bufio.NewWriter(rw),
	}
	go c.readLoop()
	return c
}

func (c *lineConn) readLoop() {
	defer close(c.lines)
	r := bufio.NewReader(c.rw)
	for {
		line, err := r.ReadString('\n')
		if err == nil || (err == io.EOF && line != "") {
			line = strings.TrimRight(line, "\r\n")
			log.Debug().Str("line", line).Msg("recv")
			select {
			case c.lines <- line:
			case <-c.done:
				return
			}
		}
		if err != nil {
			c.errMu.Lock()
			c.readErr = err
			c.errMu.Unlock()
			log.Debug().Err(err).Msg("read loop stopped")
			return
		}
	}
}

// readLine blocks until the next line arrives, the stream fails or ctx ends.
func (c *lineConn) readLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-c.lines:
		if !ok {
			c.errMu.Lock()
			err := c.readErr
			c.errMu.Unlock()
			if err == nil {
				err = io.EOF
			}
			return "", fmt.Errorf("%w: %v", ErrDisconnected, err)
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// writeLine sends one line and flushes it.
func (c *lineConn) writeLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	log.Debug().Str("line", line).Msg("send")
	if _, err := c.w.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	return nil
}

func (c *lineConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.rw.Close()
	})
	return err
}

// Dial connects to a listening peer.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return conn, nil
}

// Listener accepts exactly one peer. Every later connection is told the
// server is busy and closed without entering a game.
type Listener struct {
	ln    net.Listener
	conns chan net.Conn

	mu      sync.Mutex
	claimed bool
	err     error
}

// Listen starts accepting connections on addr.
func Listen(ctx context.Context, addr string) (*Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	l := &Listener{ln: ln, conns: make(chan net.Conn, 1)}
	go l.acceptLoop()
	return l, nil
}

func (l *Listener) acceptLoop() {
	defer close(l.conns)
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			l.mu.Lock()
			l.err = err
			l.mu.Unlock()
			return
		}

		l.mu.Lock()
		busy := l.claimed
		l.claimed = true
		l.mu.Unlock()

		if busy {
			log.Info().Str("remote", conn.RemoteAddr().String()).Msg("rejecting connection, already playing")
			rejectBusy(conn)
			continue
		}
		log.Info().Str("remote", conn.RemoteAddr().String()).Msg("peer connected")
		l.conns <- conn
	}
}

// rejectBusy sends the empty busy line and hangs up.
func rejectBusy(conn net.Conn) {
	_, _ = conn.Write([]byte("\n"))
	_ = conn.Close()
}

// Accept waits for the first peer.
func (l *Listener) Accept(ctx context.Context) (net.Conn, error) {
	select {
	case conn, ok := <-l.conns:
		if !ok {
			l.mu.Lock()
			err := l.err
			l.mu.Unlock()
			return nil, fmt.Errorf("listener stopped: %w", err)
		}
		return conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Close stops accepting connections.
func (l *Listener) Close() error {
	return l.ln.Close()
}
