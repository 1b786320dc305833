package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aph138/otpd/docs"
	"github.com/aph138/otpd/pkg/authentication"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
)

// OTPService is the engine behind the handlers.
type OTPService interface {
	Generate(ctx context.Context, userID, purpose string) (string, error)
	Validate(ctx context.Context, userID, purpose, code string) (bool, error)
	Invalidate(ctx context.Context, userID, purpose string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type Application struct {
	logger   *slog.Logger
	jwt      *authentication.JWT
	otp      OTPService
	validate *validator.Validate
	version  string
}

func NewApplication(logger *slog.Logger, jwt *authentication.JWT, otp OTPService, version string) *Application {
	return &Application{
		logger:   logger,
		jwt:      jwt,
		otp:      otp,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		version:  version,
	}
}

// Routes returns the handler serving every endpoint.
func (a *Application) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", a.HealthHandler)
	mux.HandleFunc("POST /otp/generate", a.GenerateHandler)
	mux.HandleFunc("GET /otp/validate", a.ValidateHandler)
	mux.HandleFunc("POST /otp/invalidate", a.InvalidateHandler)
	mux.Handle("DELETE /otp/delete-all", a.AuthMiddleware(http.HandlerFunc(a.DeleteAllHandler)))
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// Run serves on addr until SIGINT or SIGTERM, then shuts down within
// shutdownTimeout. SIGHUP calls reload.
func (a *Application) Run(addr string, shutdownTimeout time.Duration, reload func() error) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info(fmt.Sprintf("starting server at %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("err when ListenAndServe %w", err)
		}
		close(serveErr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sig)

	for {
		select {
		case err := <-serveErr:
			return err
		case s := <-sig:
			if s == syscall.SIGHUP {
				if reload == nil {
					continue
				}
				if err := reload(); err != nil {
					a.logger.Error(fmt.Sprintf("err when reloading config: %s", err.Error()))
				} else {
					a.logger.Info("config reloaded")
				}
				continue
			}
			// handling any interruption gracefully
			a.logger.Info("starting graceful shutdown")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("err when shutting down the server %w", err)
			}
			a.logger.Info("server is successfully shut down")
			return nil
		}
	}
}
