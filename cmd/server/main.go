package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	blog "github.com/projectblog/go-blog"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		newLogger(LoggingConfig{Level: "info", Format: "console"}, "boot").
			Error("configuration error: %v", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging, "server")

	db, err := openDatabase(cfg.Database)
	if err != nil {
		logger.Error("database error: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := blog.CreateSchema(context.Background(), db); err != nil {
		logger.Error("schema error: %v", err)
		os.Exit(1)
	}

	repos := blog.NewRepositoryManager(db)
	repos.MustValidate()

	tokens, err := blog.NewTokenService(cfg.Auth, newLogger(cfg.Logging, "tokens"))
	if err != nil {
		logger.Error("token service error: %v", err)
		os.Exit(1)
	}

	provider := blog.NewUserProvider(repos.Users()).
		WithLogger(newLogger(cfg.Logging, "identity"))

	auther := blog.NewAuthenticator(provider, tokens).
		WithLogger(newLogger(cfg.Logging, "auth"))

	controller := blog.NewAPIController(func(c *blog.APIController) *blog.APIController {
		c.Logger = newLogger(cfg.Logging, "api")
		c.Auth = auther
		c.Users = blog.NewUserService(repos).WithLogger(newLogger(cfg.Logging, "users"))
		c.Posts = blog.NewPostService(repos).WithLogger(newLogger(cfg.Logging, "posts"))
		c.Comments = blog.NewCommentService(repos).WithLogger(newLogger(cfg.Logging, "comments"))
		c.Albums = blog.NewAlbumService(repos).WithLogger(newLogger(cfg.Logging, "albums"))
		c.Photos = blog.NewPhotoService(repos).WithLogger(newLogger(cfg.Logging, "photos"))
		return c
	})

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	srv.Router().Use(blog.NewAuthMiddleware(cfg.Auth, tokens, provider))

	blog.RegisterRoutes(srv.Router(), controller, cfg.Auth.ContextKey)

	logger.Info("listening on %s", cfg.Server.Addr)
	srv.Serve(cfg.Server.Addr)

	WaitExitSignal()
	logger.Info("shutting down")
}

func openDatabase(cfg DatabaseConfig) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
