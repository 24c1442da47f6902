package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestTimeout returns middleware that sets a context deadline on each
// incoming request and answers 504 Gateway Timeout when the handler does not
// finish in time.
//
// The handler runs in its own goroutine, so every write to the response goes
// through a mutex-guarded writer: whichever side writes first wins, and the
// loser's writes are dropped instead of interleaving on the wire.
//
// The chat endpoint waits on an upstream model and can legitimately take
// longer than a CRUD request, so callers should pick a timeout that leaves it
// headroom. Handlers needing more time can derive their own context.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))

			w := &guardedWriter{ResponseWriter: c.Response().Writer}
			c.Response().Writer = w

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if ctx.Err() != context.DeadlineExceeded {
					// Client disconnect or upstream cancellation.
					return ctx.Err()
				}
				w.writeTimeout()
				return nil
			}
		}
	}
}

// guardedWriter serializes response writes between the handler goroutine and
// the timeout path. Once the deadline response is written the handler's late
// writes are discarded.
type guardedWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	started  bool
	timedOut bool
}

func (w *guardedWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.started = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *guardedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	w.started = true
	return w.ResponseWriter.Write(p)
}

// writeTimeout claims the response for the 504. If the handler already
// started writing, the partial response is left alone.
func (w *guardedWriter) writeTimeout() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.timedOut = true
	w.ResponseWriter.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
	_, _ = w.ResponseWriter.Write([]byte(`{"error":"request processing exceeded the allowed time limit"}`))
}
