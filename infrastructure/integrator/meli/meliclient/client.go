package meliclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	melidomain "github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/domain"
	"github.com/vfg2006/meli-seller-api/internal/config"
)

type Client interface {
	SearchOrders(accessToken, sellerID string, from time.Time, offset, limit int) (*melidomain.OrderSearchPage, error)
	SearchItemIDs(accessToken, sellerID string, offset, limit int) (*melidomain.ItemSearchPage, error)
	GetItem(accessToken, itemID string) (*melidomain.RemoteListing, error)
	UpdateItem(accessToken, itemID string, update melidomain.ItemUpdate) (*melidomain.RemoteListing, error)
}

type MeliClient struct {
	httpClient *http.Client
	cfg        *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &MeliClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg: cfg,
	}
}

// handleResponse lê o corpo e converte respostas de erro da API em error
func handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	errorResp := &melidomain.ErrorResponse{}
	if parseErr := json.Unmarshal(body, errorResp); parseErr == nil && errorResp.Message != "" {
		return nil, fmt.Errorf("erro na resposta da API. Status: %d, Mensagem: %s", resp.StatusCode, errorResp.Message)
	}

	return nil, fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", resp.StatusCode, string(body))
}
