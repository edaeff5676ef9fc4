package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/envutil"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/httpx"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

// Client looks companies up in the public CNPJ registry.
type Client interface {
	Lookup(ctx context.Context, cnpj string) (*Company, error)
}

type Company struct {
	CNPJ                string `json:"cnpj"`
	RazaoSocial         string `json:"razao_social"`
	NomeFantasia        string `json:"nome_fantasia"`
	CNAEFiscal          int    `json:"cnae_fiscal"`
	CNAEFiscalDesc      string `json:"cnae_fiscal_descricao"`
	SituacaoCadastral   string `json:"descricao_situacao_cadastral"`
	NaturezaJuridica    string `json:"natureza_juridica"`
	CEP                 string `json:"cep"`
	Logradouro          string `json:"logradouro"`
	Numero              string `json:"numero"`
	Complemento         string `json:"complemento"`
	Bairro              string `json:"bairro"`
	Municipio           string `json:"municipio"`
	UF                  string `json:"uf"`
	DataInicioAtividade string `json:"data_inicio_atividade"`
}

// Active reports whether the registry still lists the company as active.
func (c *Company) Active() bool {
	return strings.EqualFold(strings.TrimSpace(c.SituacaoCadastral), "ATIVA")
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

func ConfigFromEnv() Config {
	return Config{
		BaseURL:    strings.TrimSpace(os.Getenv("CNPJ_REGISTRY_BASE_URL")),
		Timeout:    envutil.Duration("CNPJ_REGISTRY_TIMEOUT", 15*time.Second),
		MaxRetries: envutil.Int("CNPJ_REGISTRY_MAX_RETRIES", 3),
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://brasilapi.com.br/api/cnpj/v1"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &client{
		log:        log.With("client", "CNPJRegistryClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

// NormalizeCNPJ strips punctuation and validates the 14-digit format.
func NormalizeCNPJ(cnpj string) (string, error) {
	var digits strings.Builder
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	out := digits.String()
	if len(out) != 14 {
		return "", apperrors.Invalid(fmt.Sprintf("cnpj must have 14 digits, got %q", cnpj))
	}
	return out, nil
}

func (c *client) Lookup(ctx context.Context, cnpj string) (*Company, error) {
	normalized, err := NormalizeCNPJ(cnpj)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", c.cfg.BaseURL, normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpx.DoWithRetry(c.httpClient, req, c.cfg.MaxRetries, 500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("cnpj registry request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("cnpj registry status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var company Company
	if err := json.NewDecoder(resp.Body).Decode(&company); err != nil {
		return nil, fmt.Errorf("cnpj registry decode: %w", err)
	}

	c.log.Debug("cnpj resolved", "cnpj", normalized, "razao_social", company.RazaoSocial)
	return &company, nil
}
