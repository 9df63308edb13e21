package odds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client consulta a API REST do provedor de odds (the-odds-api v4)
type Client struct {
	httpc   *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpc:   &http.Client{},
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
	}
}

// FetchUpcoming busca as odds futuras de uma região para um mercado.
// Erros são mapeados para a taxonomia do pacote:
// 429 -> ErrRateLimited, corpo inválido -> ErrDecode, status inesperado ->
// ErrInvalidResponse, deadline -> ErrTimeout, resto -> ErrNetwork.
func (c *Client) FetchUpcoming(ctx context.Context, region Region, market string) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("regions", string(region))
	q.Set("markets", market)
	q.Set("apiKey", c.apiKey)

	reqURL := fmt.Sprintf("%s/sports/upcoming/odds/?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: region %s", ErrTimeout, region)
		}
		return nil, fmt.Errorf("%w: region %s: %v", ErrNetwork, region, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: region %s", ErrRateLimited, region)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: region %s: status %d", ErrInvalidResponse, region, resp.StatusCode)
	}

	var evs []Event
	if err := json.NewDecoder(resp.Body).Decode(&evs); err != nil {
		return nil, fmt.Errorf("%w: region %s: %v", ErrDecode, region, err)
	}
	return evs, nil
}
