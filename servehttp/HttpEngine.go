package servehttp

import (
	"context"
	"flyerboard/bizerror"
	"flyerboard/infra/tracing"
	"flyerboard/session"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BuildEngine wires every route. Everything except sessions sits behind the
// auth filter.
func BuildEngine(gate *session.Gate, svc ProjectService, b BoardView, opts ProjectHandlerOptions) *gin.Engine {
	engine := gin.Default()
	engine.Use(tracing.TracingIngress(), bizerror.ErrorHandling())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "flyerboard")
	})

	gate.RegisterSessionsHandler(engine)

	protected := engine.Group("", gate.AuthFilter())
	session.RegisterPreferencesHandler(protected)
	RegisterProjectsHandler(protected, svc, b, opts)
	RegisterViewsHandler(protected, b)
	RegisterChangesHandler(protected, b)
	RegisterExportHandler(protected, b)
	return engine
}

// StartHTTPServer serves until ctx is cancelled, then shuts down gracefully.
func StartHTTPServer(ctx context.Context, addr string, engine *gin.Engine) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logrus.Info("[QUIT] shutdown signal has been received, the service will exit in 3 seconds.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// graceful shutdown http.Server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logrus.Info("[QUIT] http server is shutdown gracefully, new request will be rejected.")
	return nil
}
