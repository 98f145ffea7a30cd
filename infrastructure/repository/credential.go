package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/meli-seller-api/infrastructure/database/postgres"
	"github.com/vfg2006/meli-seller-api/internal/domain"
	"github.com/vfg2006/meli-seller-api/pkg/utils"
)

const (
	credentialsTable = "marketplace_credentials mc"

	credentialColumns = `mc.id, mc.user_id, mc.access_token, mc.refresh_token,
		mc.expires_at, mc.is_active, mc.external_account_id, mc.last_sync_at,
		mc.created_at, mc.updated_at`
)

type CredentialRepository interface {
	GetByUserID(userID int) (*domain.MarketplaceCredential, error)
	Save(credential *domain.MarketplaceCredential) error
	UpdateLastSyncAt(userID int, lastSyncAt time.Time) error
	Delete(userID int) error
	ListActive() ([]*domain.MarketplaceCredential, error)
}

type credentialRepository struct {
	conn *postgres.Connection
}

func NewCredentialRepository(conn *postgres.Connection) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

func (r *credentialRepository) GetByUserID(userID int) (*domain.MarketplaceCredential, error) {
	query, args, err := squirrel.
		Select(credentialColumns).
		From(credentialsTable).
		Where(squirrel.Eq{"mc.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	credential, err := scanCredential(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear credencial: %w", err)
	}

	return credential, nil
}

// Save insere ou atualiza a credencial do usuário (uma por usuário)
func (r *credentialRepository) Save(credential *domain.MarketplaceCredential) error {
	if credential.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID da credencial: %w", err)
		}
		credential.ID = id
	}

	query := squirrel.StatementBuilder.
		Insert("marketplace_credentials").
		Columns("id", "user_id", "access_token", "refresh_token",
			"expires_at", "is_active", "external_account_id").
		Values(
			credential.ID,
			credential.UserID,
			credential.AccessToken,
			credential.RefreshToken,
			credential.ExpiresAt,
			credential.IsActive,
			credential.ExternalAccountID,
		).
		Suffix(`
			ON CONFLICT (user_id) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				expires_at = EXCLUDED.expires_at,
				is_active = EXCLUDED.is_active,
				external_account_id = EXCLUDED.external_account_id,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao salvar credencial: %w", err)
	}

	return nil
}

func (r *credentialRepository) UpdateLastSyncAt(userID int, lastSyncAt time.Time) error {
	query, args, err := squirrel.
		Update("marketplace_credentials").
		Set("last_sync_at", lastSyncAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar last_sync_at: %w", err)
	}

	return nil
}

// Delete remove a credencial. Usado apenas na desconexão explícita do usuário.
func (r *credentialRepository) Delete(userID int) error {
	query, args, err := squirrel.
		Delete("marketplace_credentials").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover credencial: %w", err)
	}

	return nil
}

func (r *credentialRepository) ListActive() ([]*domain.MarketplaceCredential, error) {
	query, args, err := squirrel.
		Select(credentialColumns).
		From(credentialsTable).
		Where(squirrel.Eq{"mc.is_active": true}).
		OrderBy("mc.user_id ASC").
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

	credentials := make([]*domain.MarketplaceCredential, 0)
	for rows.Next() {
		credential := &domain.MarketplaceCredential{}
		err := rows.Scan(
			&credential.ID, &credential.UserID, &credential.AccessToken, &credential.RefreshToken,
			&credential.ExpiresAt, &credential.IsActive, &credential.ExternalAccountID, &credential.LastSyncAt,
			&credential.CreatedAt, &credential.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear credenciais: %w", err)
		}
		credentials = append(credentials, credential)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return credentials, nil
}

func scanCredential(row *sql.Row) (*domain.MarketplaceCredential, error) {
	credential := &domain.MarketplaceCredential{}
	err := row.Scan(
		&credential.ID, &credential.UserID, &credential.AccessToken, &credential.RefreshToken,
		&credential.ExpiresAt, &credential.IsActive, &credential.ExternalAccountID, &credential.LastSyncAt,
		&credential.CreatedAt, &credential.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return credential, nil
}
