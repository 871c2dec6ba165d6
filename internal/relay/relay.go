// Package relay forwards session signals to a socket.io server so a remote
// viewer can follow a game as it is played.
package relay

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/specialistvlad/cargogo/internal/ctxlog"
	"github.com/specialistvlad/cargogo/internal/signal"
	"github.com/specialistvlad/cargogo/internal/world"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event is the socket.io event every signal is emitted as.
const Event = "signal"

// ConnectTimeout bounds how long Connect waits for the handshake.
const ConnectTimeout = 15 * time.Second

// Options tunes the client.
type Options struct {
	Namespace          string
	InsecureSkipVerify bool
}

// Payload is the JSON shape of a forwarded signal.
type Payload struct {
	Name    string          `json:"name"`
	Line    int             `json:"line,omitempty"`
	From    *world.Position `json:"from,omitempty"`
	To      *world.Position `json:"to,omitempty"`
	Heading string          `json:"heading,omitempty"`
	Count   int             `json:"count,omitempty"`
	Text    string          `json:"text,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// NewPayload builds the payload for sig. Positions are only included for
// signals that carry one.
func NewPayload(sig signal.Signal) Payload {
	p := Payload{
		Name:    string(sig.Name),
		Line:    sig.Line,
		Heading: string(sig.Heading),
		Count:   sig.Count,
		Text:    sig.Text,
	}
	switch sig.Name {
	case signal.Drive, signal.Collision, signal.TurnLeft, signal.TurnRight,
		signal.CreditPickedUp, signal.CreditFailed, signal.ReachedFinish:
		from, to := sig.From, sig.To
		p.From, p.To = &from, &to
	}
	if sig.Err != nil {
		p.Error = sig.Err.Error()
	}
	return p
}

// Relay emits signals over a connected socket.io client.
type Relay struct {
	logger *slog.Logger
	emit   func(event string, args ...any)
	close  func()
}

// Connect dials rawURL and waits for the namespace to connect.
func Connect(ctx context.Context, rawURL string, opts Options) (*Relay, error) {
	logger := ctxlog.FromContext(ctx).With("component", "relay", "url", rawURL)
	logger.Info("Connecting relay...")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse relay URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("relay URL %q must include scheme and host", rawURL)
	}

	sockOpts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		sockOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(namespace, sockOpts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Relay connected.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connected <- err
	})

	io.Connect()

	timer := time.NewTimer(ConnectTimeout)
	defer timer.Stop()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-timer.C:
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", ConnectTimeout)
	}

	return &Relay{
		logger: logger,
		emit:   func(event string, args ...any) { io.Emit(event, args...) },
		close:  func() { io.Disconnect() },
	}, nil
}

// Forward emits sig. It has the signal.Handler shape so it can be
// subscribed to a bus directly.
func (r *Relay) Forward(sig signal.Signal) {
	r.emit(Event, NewPayload(sig))
}

// Close disconnects the client.
func (r *Relay) Close() {
	r.logger.Debug("Closing relay.")
	r.close()
}
