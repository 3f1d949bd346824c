package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpContext "github.com/studybuddy/studybuddy-server/internal/api/http/context"
	"github.com/studybuddy/studybuddy-server/internal/api/http/router"
	"github.com/studybuddy/studybuddy-server/internal/config"
	"github.com/studybuddy/studybuddy-server/internal/extract"
	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/mail"
	"github.com/studybuddy/studybuddy-server/internal/model"
	"github.com/studybuddy/studybuddy-server/internal/provider/gemini"
	"github.com/studybuddy/studybuddy-server/internal/repository/memory"
	"github.com/studybuddy/studybuddy-server/internal/repository/postgres"
	"github.com/studybuddy/studybuddy-server/internal/repository/snapshot"
	"github.com/studybuddy/studybuddy-server/internal/repository/sqlite"
	"github.com/studybuddy/studybuddy-server/internal/server"
	"github.com/studybuddy/studybuddy-server/internal/service"
	"github.com/studybuddy/studybuddy-server/internal/storage/file"
	storage "github.com/studybuddy/studybuddy-server/internal/storage/minio"
	"github.com/studybuddy/studybuddy-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	documents, closer, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	logger.Info("snapshot storage ready", "backend", cfg.Storage.Backend)

	accountStore := snapshot.NewAccountStore(documents, cfg.Storage.UsersKey, logger)
	historyStore := snapshot.NewHistoryStore(documents, cfg.Storage.HistoryKey, logger)
	ticketStore := memory.NewResetTicketRepository()
	workspaces := memory.NewWorkspaceRepository()

	generator, err := gemini.NewProvider(ctx, cfg.GoogleAPIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	if err != nil {
		logger.Fatal("failed to create generation provider", "error", err)
	}

	mailer := mail.NewSMTPMailer(mail.Config{
		Address:  cfg.Email.Address,
		Password: cfg.Email.Password,
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
	})
	if !mailer.Enabled() {
		logger.Warn("email credentials not set, password reset is disabled")
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	conversation := service.NewConversation(generator, logger)

	r := router.New(router.Options{
		AuthService:    service.NewAuth(accountStore, tokenManager, logger),
		ResetService:   service.NewReset(accountStore, ticketStore, mailer, logger),
		SessionService: service.NewSession(historyStore, conversation, extract.NewExtractor(logger), logger),
		StudyService:   service.NewStudy(conversation, logger),
		TokenService:   service.NewTokenService(tokenManager, logger),
		Workspaces:     workspaces,
		ContextManager: httpContext.NewManager(),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		MaxUploadMB:    cfg.HTTP.MaxUploadMB,
		Logger:         logger,
	})

	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s *server.HTTPServer) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openStorage builds the document storage selected by STORAGE_BACKEND. The
// returned closer is nil for backends without a connection to release.
func openStorage(ctx context.Context, cfg *config.Config) (model.Storage, io.Closer, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewDocumentRepository(db), db, nil

	case config.BackendSQLite:
		db, err := sqlite.NewConnection(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewDocumentRepository(db), db, nil

	case config.BackendMinIO:
		minioClient, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		client, err := storage.NewClient(ctx, minioClient, cfg.MinIO.Bucket, "")
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil

	default:
		client, err := file.NewClient(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
