package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meli-seller-api/infrastructure/repository"
	"github.com/vfg2006/meli-seller-api/internal/config"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/internal/usecases/syncing"
)

// MeliSyncConfig representa a configuração do agendador de sincronização com o Mercado Livre
type MeliSyncConfig struct {
	CronSchedule       string
	PageSize           int
	RequestDelayMillis int
	SyncEnabled        bool
}

// MeliSyncService agenda a sincronização incremental de todos os vendedores
// com credencial ativa
type MeliSyncService struct {
	scheduler           *gocron.Scheduler
	config              MeliSyncConfig
	appConfig           *config.Config
	credRepo            repository.CredentialRepository
	synchronizer        syncing.Synchronizer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewMeliSyncService(
	credRepo repository.CredentialRepository,
	synchronizer syncing.Synchronizer,
	appConfig *config.Config,
) *MeliSyncService {
	syncConfig := MeliSyncConfig{
		CronSchedule:       appConfig.MeliSync.CronSchedule,
		PageSize:           appConfig.MeliSync.PageSize,
		RequestDelayMillis: appConfig.MeliSync.RequestDelayMillis,
		SyncEnabled:        appConfig.MeliSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":        syncConfig.CronSchedule,
		"page_size":            syncConfig.PageSize,
		"request_delay_millis": syncConfig.RequestDelayMillis,
		"sync_enabled":         syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização do Mercado Livre carregada")

	return &MeliSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		appConfig:    appConfig,
		credRepo:     credRepo,
		synchronizer: synchronizer,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *MeliSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada do Mercado Livre desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização do Mercado Livre")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllSellers(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do Mercado Livre: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização do Mercado Livre")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllSellers sincroniza todos os vendedores com credencial ativa, um por
// vez. Vendedores com sincronização manual em andamento são pulados.
func (s *MeliSyncService) syncAllSellers(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do Mercado Livre já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização do Mercado Livre para todos os vendedores conectados")

	credentials, err := s.credRepo.ListActive()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar credenciais ativas para sincronização")
		return
	}

	if len(credentials) == 0 {
		logrus.Info("Nenhum vendedor conectado ao Mercado Livre")
		return
	}

	synced := 0
	for _, credential := range credentials {
		stats, err := s.synchronizer.Sync(ctx, credential.UserID, false)
		if err != nil {
			if errors.Is(err, domain.ErrSyncAlreadyRunning) {
				logrus.WithField("user_id", credential.UserID).
					Info("Vendedor com sincronização em andamento, pulando")
				continue
			}
			logrus.WithFields(logrus.Fields{
				"user_id": credential.UserID,
				"error":   err.Error(),
			}).Error("Erro na sincronização agendada do vendedor")
			continue
		}

		synced++
		logrus.WithFields(logrus.Fields{
			"user_id":        credential.UserID,
			"records_synced": stats.RecordsSynced,
		}).Info("Vendedor sincronizado")
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"sellers":  len(credentials),
		"synced":   synced,
	}).Info("Sincronização agendada do Mercado Livre concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente a sincronização de todos os vendedores
func (s *MeliSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do Mercado Livre já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual do Mercado Livre")
	go s.syncAllSellers(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *MeliSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_page_size":         s.config.PageSize,
		"sync_request_delay_ms":  s.config.RequestDelayMillis,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
