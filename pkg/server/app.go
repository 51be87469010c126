package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ciphernom/rektcast/internal/service/newsfeed"
	"github.com/ciphernom/rektcast/internal/usecase"
	pkgch "github.com/ciphernom/rektcast/pkg/clickhouse"
	"github.com/ciphernom/rektcast/pkg/config"
	xhttp "github.com/ciphernom/rektcast/pkg/http"
	pkgkafka "github.com/ciphernom/rektcast/pkg/kafka"
	applogger "github.com/ciphernom/rektcast/pkg/logger"
	"github.com/ciphernom/rektcast/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	collector   *usecase.TickCollector
	consumer    *pkgkafka.Consumer
	handlers    []pkgkafka.MessageHandler
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	TickProc    *usecase.TickProcessor

	poller    *newsfeed.Poller
	jobQueue  *queue.RedisQueue
	scheduler *usecase.RetrainScheduler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	handlers []pkgkafka.MessageHandler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		collector: collector,
		consumer:  consumer,
		handlers:  handlers,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// SetNewsfeedPoller injects the headline poller.
func (a *App) SetNewsfeedPoller(p *newsfeed.Poller) { a.poller = p }

// SetJobQueue injects the retrain job consumer.
func (a *App) SetJobQueue(q *queue.RedisQueue) { a.jobQueue = q }

// SetRetrainScheduler injects the periodic retrain publisher.
func (a *App) SetRetrainScheduler(s *usecase.RetrainScheduler) { a.scheduler = s }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start tick collector
	go func() {
		if err := a.collector.Start(ctx); err != nil {
			l.Error("collector error", applogger.Error(err))
		}
	}()
	l.Info("collector started", applogger.Strings("symbols", a.cfg.Finnhub.Symbols))

	// Start consumer if configured
	if a.consumer != nil && len(a.handlers) > 0 {
		for _, h := range a.handlers {
			a.consumer.RegisterHandler(h)
			l.Info("kafka handler registered", applogger.String("topic", h.Topic()))
		}
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
	}

	// Start headline poller
	if a.poller != nil {
		a.poller.Start(ctx)
		l.Info("newsfeed poller started")
	}

	// Start retrain queue and scheduler
	if a.jobQueue != nil {
		if err := a.jobQueue.Start(); err != nil {
			l.Error("job queue start error", applogger.Error(err))
		} else {
			l.Info("job queue started")
		}
	}
	if a.scheduler != nil {
		a.scheduler.Start(ctx)
		l.Info("retrain scheduler started")
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.poller != nil {
		a.poller.Stop()
	}

	// Stop collector (pipeline + stream)
	if err := a.collector.Shutdown(ctx); err != nil {
		l.Warn("collector stop error", applogger.Error(err))
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	if a.jobQueue != nil {
		if err := a.jobQueue.Stop(shutdownCtx); err != nil {
			l.Warn("job queue stop error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close tick processor resources (publisher/storage)
	if a.TickProc != nil {
		a.TickProc.Close()
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
