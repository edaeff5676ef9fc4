package viacep

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

// Client resolves Brazilian postal codes (CEP) to addresses.
type Client interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}

type Address struct {
	CEP        string `json:"cep"`
	Street     string `json:"logradouro"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"localidade"`
	State      string `json:"uf"`
	IBGECode   string `json:"ibge"`

	// Erro is set by the upstream API when the CEP does not exist.
	Erro bool `json:"erro,omitempty"`
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

func ConfigFromEnv() Config {
	return Config{
		BaseURL:    strings.TrimSpace(os.Getenv("VIACEP_BASE_URL")),
		Timeout:    envutil.Duration("VIACEP_TIMEOUT", 10*time.Second),
		MaxRetries: envutil.Int("VIACEP_MAX_RETRIES", 3),
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
		cfg.BaseURL = "https://viacep.com.br/ws"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &client{
		log:        log.With("client", "ViaCEPClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

// NormalizeCEP strips punctuation and validates the 8-digit format.
func NormalizeCEP(cep string) (string, error) {
	var digits strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	out := digits.String()
	if len(out) != 8 {
		return "", apperrors.Invalid(fmt.Sprintf("cep must have 8 digits, got %q", cep))
	}
	return out, nil
}

func (c *client) Lookup(ctx context.Context, cep string) (*Address, error) {
	normalized, err := NormalizeCEP(cep)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/json/", c.cfg.BaseURL, normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpx.DoWithRetry(c.httpClient, req, c.cfg.MaxRetries, 500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("viacep request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("viacep status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var addr Address
	if err := json.NewDecoder(resp.Body).Decode(&addr); err != nil {
		return nil, fmt.Errorf("viacep decode: %w", err)
	}
	if addr.Erro {
		return nil, apperrors.ErrNotFound
	}

	c.log.Debug("cep resolved", "cep", normalized, "city", addr.City, "state", addr.State)
	return &addr, nil
}
