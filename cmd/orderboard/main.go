package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wellywell/orderboard/internal/animation"
	"github.com/wellywell/orderboard/internal/compress"
	"github.com/wellywell/orderboard/internal/config"
	"github.com/wellywell/orderboard/internal/db"
	"github.com/wellywell/orderboard/internal/filestore"
	"github.com/wellywell/orderboard/internal/handlers"
	"github.com/wellywell/orderboard/internal/router"
)

const shutdownTimeout = 5 * time.Second

func main() {
	conf, err := config.NewConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}

	level, err := logger.ParseLevel(conf.LogLevel)
	if err != nil {
		panic(err)
	}
	logger.SetLevel(level)

	var storage handlers.Storage
	if conf.DatabaseDSN != "" {
		database, err := db.NewDatabase(conf.DatabaseDSN)
		if err != nil {
			panic(err)
		}
		defer database.Close()
		storage = database
		logger.Info("Using postgres storage")
	} else {
		storage = filestore.NewStore(conf.OrdersFile, conf.UsersFile)
		logger.Infof("Using CSV storage %s, %s", conf.OrdersFile, conf.UsersFile)
	}

	animations := animation.NewClient(animation.DefaultURLs, conf.AnimationTimeout, conf.AnimationCacheTTL)

	handlerSet := handlers.NewHandlerSet([]byte(conf.Secret), conf.AuthCookieExpiresIn, storage, animations, handlers.Options{
		Rooms:           conf.Rooms,
		RefreshInterval: conf.RefreshInterval,
		HistoryLimit:    conf.HistoryLimit,
	})

	r := router.NewRouter(conf, handlerSet, compress.RequestUngzipper{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(r.ListenAndServe)

	g.Go(func() error {
		return animations.Warm(ctx, max(conf.AnimationCacheTTL/2, time.Minute))
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return r.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(err)
	}
}
