package meliclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meli-seller-api/internal/config"
)

// TokenResponse representa a resposta de POST /oauth/token do Mercado Livre
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	UserID       int64  `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
}

// ExchangeAuthorizationCode troca o código OAuth devolvido pelo fluxo de
// autorização por um par access/refresh token
func ExchangeAuthorizationCode(cfg *config.Meli, code string) (*TokenResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("código de autorização não pode ser vazio")
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", cfg.AppID)
	form.Set("client_secret", cfg.AppSecret)
	form.Set("code", code)
	form.Set("redirect_uri", cfg.RedirectURI)

	return requestToken(cfg.BaseURL, form)
}

// RefreshAccessToken renova o access token usando o refresh token vigente.
// O Mercado Livre invalida o refresh token usado e devolve um novo.
func RefreshAccessToken(cfg *config.Meli, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token não pode ser vazio")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", cfg.AppID)
	form.Set("client_secret", cfg.AppSecret)
	form.Set("refresh_token", refreshToken)

	return requestToken(cfg.BaseURL, form)
}

func requestToken(baseURL string, form url.Values) (*TokenResponse, error) {
	endpoint := fmt.Sprintf("%s/oauth/token", baseURL)

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Post(endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao requisitar token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logrus.Errorf("Erro obtendo token do Mercado Livre. Status: %d, Resposta: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("erro ao obter token. Status: %d, Resposta: %s", resp.StatusCode, body)
	}

	tokenResp := &TokenResponse{}
	if err := json.Unmarshal(body, tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return tokenResp, nil
}

// CalculateTokenExpiration calcula quando o token expira a partir do
// expires_in em segundos
func CalculateTokenExpiration(expiresIn int64) time.Time {
	return time.Now().Add(time.Duration(expiresIn) * time.Second)
}
