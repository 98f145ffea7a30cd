package domain

import (
	"errors"
	"time"
)

// ErrSyncAlreadyRunning indica que já existe uma sincronização em andamento
// para o usuário. Invocações sobrepostas são rejeitadas, nunca enfileiradas.
var ErrSyncAlreadyRunning = errors.New("sincronização já em andamento para este usuário")

// ErrSyncPersistence indica falha de escrita no espelho local durante a
// sincronização. Diferente de uma falha remota, aborta a execução inteira.
var ErrSyncPersistence = errors.New("falha de persistência no espelho local")

// SyncRunStatus representa o status de uma execução de sincronização
type SyncRunStatus string

const (
	SyncRunStatusRunning   SyncRunStatus = "running"
	SyncRunStatusCompleted SyncRunStatus = "completed"
	SyncRunStatusFailed    SyncRunStatus = "failed"
)

// SyncRun é o registro de auditoria de uma sincronização. Append-only: uma
// linha por invocação, mutada apenas para fechá-la.
type SyncRun struct {
	ID            string        `json:"id"`
	UserID        int           `json:"user_id"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    *time.Time    `json:"finished_at"`
	Status        SyncRunStatus `json:"status"`
	RecordsSynced int           `json:"records_synced"`
	ErrorMessage  *string       `json:"error_message"`
}

// SyncStats resume o resultado de uma sincronização. RecordsSynced conta
// apenas inserções (pedidos + itens + produtos), não atualizações.
type SyncStats struct {
	OrdersInserted   int      `json:"orders_inserted"`
	OrdersUpdated    int      `json:"orders_updated"`
	ItemsInserted    int      `json:"items_inserted"`
	ProductsInserted int      `json:"products_inserted"`
	ListingsInserted int      `json:"listings_inserted"`
	ListingsUpdated  int      `json:"listings_updated"`
	RecordsSynced    int      `json:"records_synced"`
	PartialErrors    []string `json:"partial_errors,omitempty"`
}
