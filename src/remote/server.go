// Remote control over QUIC: each stream carries length-prefixed command
// frames and gets one reply frame per command.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	quic "github.com/quic-go/quic-go"
	"golang.org/x/sync/errgroup"
)

type Executor interface {
	Execute(line string) (string, error)
}

func quicConfig() *quic.Config {
	return &quic.Config{
		MaxIdleTimeout:  time.Minute,
		KeepAlivePeriod: 15 * time.Second,
	}
}

type Server struct {
	ln   *quic.Listener
	exec Executor
}

// Listen binds addr. Use port 0 to pick a free port and read it back with Addr.
func Listen(addr string, exec Executor) (*Server, error) {
	tlsConf, err := serverTLSConfig()
	if err != nil {
		return nil, fmt.Errorf("server tls config: %w", err)
	}
	ln, err := quic.ListenAddr(addr, tlsConf, quicConfig())
	if err != nil {
		return nil, fmt.Errorf("quic listen: %w", err)
	}
	return &Server{ln: ln, exec: exec}, nil
}

func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until ctx is done, then closes the listener and
// every connection and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	defer s.ln.Close()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	slog.Info("Remote control listening", "addr", s.Addr())

	var g errgroup.Group
	var acceptErr error
	for {
		conn, err := s.ln.Accept(ctx)
		if err != nil {
			if ctx.Err() == nil {
				acceptErr = fmt.Errorf("quic accept: %w", err)
			}
			break
		}
		slog.Info("Remote client connected", "addr", conn.RemoteAddr())
		g.Go(func() error {
			s.handleConn(ctx, conn)
			return nil
		})
	}
	cancel()
	g.Wait()
	return acceptErr
}

func (s *Server) handleConn(ctx context.Context, conn *quic.Conn) {
	stop := context.AfterFunc(ctx, func() {
		_ = conn.CloseWithError(0, "server shutting down")
	})
	defer stop()
	for {
		stream, err := conn.AcceptStream(ctx)
		if err != nil {
			slog.Info("Remote client disconnected", "addr", conn.RemoteAddr(), "reason", err)
			return
		}
		go s.handleStream(stream)
	}
}

func (s *Server) handleStream(stream *quic.Stream) {
	defer stream.Close()
	for {
		frame, err := readFrame(stream)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Debug("Remote stream ended", "err", err)
			}
			return
		}
		line := string(frame)
		reply, execErr := s.exec.Execute(line)
		slog.Debug("Remote command", "line", line, "err", execErr)
		if err := writeFrame(stream, encodeReply(reply, execErr)); err != nil {
			slog.Warn("Sending remote reply failed", "err", err)
			return
		}
	}
}
