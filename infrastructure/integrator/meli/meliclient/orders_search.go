package meliclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	melidomain "github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli/domain"
)

// SearchOrders busca uma página de pedidos do vendedor criados a partir de
// `from`, ordenados do mais recente para o mais antigo
func (c *MeliClient) SearchOrders(accessToken, sellerID string, from time.Time, offset, limit int) (*melidomain.OrderSearchPage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	endpoint, err := url.Parse(c.cfg.Meli.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/orders/search")

	query := endpoint.Query()
	query.Set("seller", sellerID)
	query.Set("order.date_created.from", from.UTC().Format(time.RFC3339))
	query.Set("sort", "date_desc")
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := handleResponse(resp)
	if err != nil {
		return nil, err
	}

	page := &melidomain.OrderSearchPage{}
	if err := json.Unmarshal(body, page); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return page, nil
}
