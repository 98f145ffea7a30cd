package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meli-seller-api/infrastructure/database/postgres"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/pkg/utils"
)

const (
	syncRunsTable = "sync_runs sr"

	syncRunColumns = `sr.id, sr.user_id, sr.started_at, sr.finished_at,
		sr.status, sr.records_synced, sr.error_message`
)

type SyncRunRepository interface {
	Create(run *domain.SyncRun) error
	Close(run *domain.SyncRun) error
	ListByUser(userID int, limit int) ([]*domain.SyncRun, error)
}

type syncRunRepository struct {
	conn *postgres.Connection
}

func NewSyncRunRepository(conn *postgres.Connection) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

func (r *syncRunRepository) Create(run *domain.SyncRun) error {
	if run.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID da sincronização: %w", err)
		}
		run.ID = id
	}

	query, args, err := squirrel.
		Insert("sync_runs").
		Columns("id", "user_id", "started_at", "status", "records_synced").
		Values(run.ID, run.UserID, run.StartedAt, run.Status, run.RecordsSynced).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao registrar sincronização: %w", err)
	}

	return nil
}

// Close fecha o registro de auditoria. Única mutação permitida em sync_runs.
func (r *syncRunRepository) Close(run *domain.SyncRun) error {
	query, args, err := squirrel.
		Update("sync_runs").
		Set("finished_at", run.FinishedAt).
		Set("status", run.Status).
		Set("records_synced", run.RecordsSynced).
		Set("error_message", run.ErrorMessage).
		Where(squirrel.Eq{"id": run.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao fechar registro de sincronização: %w", err)
	}

	return nil
}

func (r *syncRunRepository) ListByUser(userID int, limit int) ([]*domain.SyncRun, error) {
	query, args, err := squirrel.
		Select(syncRunColumns).
		From(syncRunsTable).
		Where(squirrel.Eq{"sr.user_id": userID}).
		OrderBy("sr.started_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.SyncRun, 0)
	for rows.Next() {
		run := &domain.SyncRun{}
		err := rows.Scan(
			&run.ID, &run.UserID, &run.StartedAt, &run.FinishedAt,
			&run.Status, &run.RecordsSynced, &run.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear sincronizações: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}
