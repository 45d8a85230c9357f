package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/casiec/internal/buildinfo"
	"github.com/dmitrijs2005/casiec/internal/client/cli"
	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/config"
	"github.com/dmitrijs2005/casiec/internal/client/dashboard"
	"github.com/dmitrijs2005/casiec/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casiec/internal/client/services"
	"github.com/dmitrijs2005/casiec/internal/client/session"
	"github.com/dmitrijs2005/casiec/internal/client/storage"
	"github.com/dmitrijs2005/casiec/internal/client/toast"
	"github.com/dmitrijs2005/casiec/internal/client/views"
	"github.com/dmitrijs2005/casiec/internal/client/wizard"
	"github.com/dmitrijs2005/casiec/internal/filex"
	"github.com/dmitrijs2005/casiec/internal/logging"
)

func main() {

	buildinfo.Print(os.Stdout, "CASIEC console")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	dir, err := filex.EnsureDataDir(cfg.DataDir)
	if err != nil {
		log.Fatalf("%v", err)
	}
	db, err := storage.Open(ctx, filex.ResolveIn(dir, cfg.DatabasePath))
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	sess := session.NewManager(metadata.NewSQLiteRepository(db))
	if err := sess.Load(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	router := views.NewRouter()
	toasts := toast.NewQueue(cfg.ToastTTL)

	api := client.New(cfg.APIBaseURL, sess,
		client.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		client.WithRedirector(router),
		client.WithLogger(logger.With("component", "api")),
	)

	auth := services.NewAuthService(api, sess, logger)
	content := services.NewContentService(api)
	applications := services.NewApplicationService(api)
	inquiries := services.NewInquiryService(api)

	board := dashboard.New(content, applications, inquiries, toasts, logger.With("component", "dashboard"), cfg.PollInterval,
		dashboard.WithSessionCheck(sess.Authenticated))

	app := cli.NewApp(cli.Deps{
		Router:    router,
		Wizard:    wizard.New(applications, toasts),
		Auth:      auth,
		Content:   content,
		Inquiries: inquiries,
		Board:     board,
		Toasts:    toasts,
		Session:   sess,
		Logger:    logger,
	})

	app.Run(ctx)
}
