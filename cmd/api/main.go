package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meli-seller-api/infrastructure/database/postgres"
	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli"
	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/meliclient"
	"github.com/vfg2006/meli-seller-api/infrastructure/repository"
	"github.com/vfg2006/meli-seller-api/internal/api"
	"github.com/vfg2006/meli-seller-api/internal/config"
	"github.com/vfg2006/meli-seller-api/internal/scheduler"
	"github.com/vfg2006/meli-seller-api/internal/usecases/authenticating"
	"github.com/vfg2006/meli-seller-api/internal/usecases/costing"
	"github.com/vfg2006/meli-seller-api/internal/usecases/listing"
	"github.com/vfg2006/meli-seller-api/internal/usecases/profiting"
	"github.com/vfg2006/meli-seller-api/internal/usecases/syncing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	orderRepo := repository.NewOrderRepository(pgConn)
	listingRepo := repository.NewListingRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	fixedCostRepo := repository.NewFixedCostRepository(pgConn)
	credentialRepo := repository.NewCredentialRepository(pgConn)
	syncRunRepo := repository.NewSyncRunRepository(pgConn)

	authenticator := authenticating.NewService(cfg)

	tokenManager := meliclient.NewTokenManager(cfg, credentialRepo)
	meliClient := meliclient.NewClient(cfg)
	meliIntegrator := meli.New(cfg, meliClient, tokenManager)

	profitService := profiting.NewService(orderRepo, fixedCostRepo)
	costingService := costing.NewService(fixedCostRepo)
	listingService := listing.NewService(cfg, meliIntegrator, listingRepo)

	synchronizer := syncing.NewService(
		cfg,
		meliIntegrator,
		orderRepo,
		listingRepo,
		productRepo,
		syncRunRepo,
		credentialRepo,
	)

	meliSyncService := scheduler.NewMeliSyncService(credentialRepo, synchronizer, cfg)

	if err := meliSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização do Mercado Livre")
	} else {
		logrus.Info("Agendador de sincronização do Mercado Livre iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		profitService,
		synchronizer,
		listingService,
		costingService,
		meliIntegrator,
		authenticator,
		meliSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
