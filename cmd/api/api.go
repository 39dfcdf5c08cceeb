package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adilbekov/homecook-api/docs"
	"github.com/adilbekov/homecook-api/internal/auth"
	"github.com/adilbekov/homecook-api/internal/catalog"
	"github.com/adilbekov/homecook-api/internal/kv"
	"github.com/adilbekov/homecook-api/internal/queue"
	"github.com/adilbekov/homecook-api/internal/ratelimiter"
	"github.com/adilbekov/homecook-api/internal/repo"
	"github.com/adilbekov/homecook-api/internal/service"
	"github.com/adilbekov/homecook-api/internal/store/mongo"
	"github.com/adilbekov/homecook-api/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config            config
	logger            *zap.SugaredLogger
	rateLimiter       ratelimiter.Limiter
	storage           *mongo.Storage
	broker            queue.Broker
	cartStore         kv.Store
	sessions          *auth.SessionManager
	feed              *catalog.Feed
	orderRepo         repo.OrderRepository
	applicationRepo   repo.ApplicationRepository
	contactRepo       repo.ContactRepository
	orderService      *service.OrderService
	reviewService     *service.ReviewService
	userService       *service.UserService
	orderPlacedWorker *worker.OrderPlacedWorker
	orderStatusWorker *worker.OrderStatusWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	redis       redisConfig
	rabbitMQ    rabbitMQConfig
	catalogPath string
	taxRate     float64
	sessionTTL  time.Duration
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type redisConfig struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", app.createOrderHandler)
			r.Get("/", app.getOrdersHandler)
			r.Get("/{order_id}", app.getOrderHandler)
			r.Put("/{order_id}", app.updateOrderHandler)
			r.Delete("/{order_id}", app.deleteOrderHandler)
			r.Patch("/{order_id}/status", app.updateOrderStatusHandler)
			r.Get("/{order_id}/audit", app.getOrderAuditHandler)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", app.createReviewHandler)
			r.Get("/", app.getReviewsHandler)
			r.Get("/{review_id}", app.getReviewHandler)
			r.Put("/{review_id}", app.updateReviewHandler)
			r.Delete("/{review_id}", app.deleteReviewHandler)
		})

		r.Route("/homecooks", func(r chi.Router) {
			r.Post("/", app.createHomeCookApplicationHandler)
			r.Get("/", app.getHomeCookApplicationsHandler)
			r.Get("/{application_id}", app.getHomeCookApplicationHandler)
			r.Put("/{application_id}", app.updateHomeCookApplicationHandler)
			r.Delete("/{application_id}", app.deleteHomeCookApplicationHandler)
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", app.createContactSubmissionHandler)
			r.Get("/", app.getContactSubmissionsHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", app.signupHandler)
			r.Post("/login", app.loginHandler)
			r.Post("/logout", app.logoutHandler)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", app.getCartHandler)
			r.Post("/items", app.addCartItemHandler)
			r.Post("/items/{name}/increment", app.incrementCartItemHandler)
			r.Post("/items/{name}/decrement", app.decrementCartItemHandler)
			r.Delete("/items/{name}", app.removeCartItemHandler)
			r.Delete("/", app.clearCartHandler)
			r.Post("/checkout", app.checkoutHandler)
		})

		r.Get("/catalog", app.getCatalogHandler)
		r.Get("/meals", app.getMealsHandler)
		r.Get("/search", app.searchHandler)
		r.Get("/config/checkout", app.getCheckoutConfigHandler)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "HomeCook"
	docs.SwaggerInfo.Description = "API for the HomeCook marketplace"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.orderPlacedWorker != nil {
		if err := app.orderPlacedWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order placed worker: %w", err)
		}
	}
	if app.orderStatusWorker != nil {
		if err := app.orderStatusWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order status worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.orderPlacedWorker != nil {
			app.orderPlacedWorker.Stop()
		}
		if app.orderStatusWorker != nil {
			app.orderStatusWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		if store, ok := app.cartStore.(*kv.RedisStore); ok {
			if err := store.Close(); err != nil {
				app.logger.Errorw("error closing Redis", "error", err)
			} else {
				app.logger.Info("Redis connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
