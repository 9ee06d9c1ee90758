package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"folharh/internal/storage"
)

const (
	requestTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// Client issues the four table primitives plus the health probe against a
// peer instance running in server mode. Every call carries an explicit
// timeout: no response by the deadline is an unreachable peer, not an
// indefinite wait.
type Client struct {
	client    *http.Client
	ping      *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewClient(serverIP string, serverPort int, log *slog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 4,
	}

	return &Client{
		client:    &http.Client{Timeout: requestTimeout, Transport: transport},
		ping:      &http.Client{Timeout: pingTimeout, Transport: transport},
		log:       log.With(slog.String("component", "remote_client")),
		baseURL:   "http://" + serverIP + ":" + strconv.Itoa(serverPort),
		userAgent: "FolhaRH-Client/1.0",
	}
}

// BaseURL exposes the resolved peer address, for status displays.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks that the peer is up and answering.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("erro ao criar pedido: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.ping.Do(req)
	if err != nil {
		return fmt.Errorf("servidor indisponível: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("servidor devolveu o estado %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) FetchAll(ctx context.Context, table string) ([]storage.Row, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/tables/"+table, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Success bool          `json:"success"`
		Rows    []storage.Row `json:"rows"`
		Error   string        `json:"error,omitempty"`
	}
	if err := c.parseResponse(resp, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("o servidor rejeitou a consulta: %s", body.Error)
	}
	return body.Rows, nil
}

func (c *Client) FetchByID(ctx context.Context, table, id string) (storage.Row, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/tables/"+table+"/"+id, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Success bool        `json:"success"`
		Row     storage.Row `json:"row"`
		Error   string      `json:"error,omitempty"`
	}
	if err := c.parseResponse(resp, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("o servidor rejeitou a consulta: %s", body.Error)
	}
	return body.Row, nil
}

func (c *Client) Insert(ctx context.Context, table string, row storage.Row) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/tables/"+table, row)
	if err != nil {
		return err
	}
	return c.parseOpResponse(resp)
}

func (c *Client) Update(ctx context.Context, table, id string, row storage.Row) error {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/v1/tables/"+table+"/"+id, row)
	if err != nil {
		return err
	}
	return c.parseOpResponse(resp)
}

func (c *Client) Delete(ctx context.Context, table, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/v1/tables/"+table+"/"+id, nil)
	if err != nil {
		return err
	}
	return c.parseOpResponse(resp)
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar pedido: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar pedido: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("servidor indisponível: %w", err)
	}
	return resp, nil
}

func (c *Client) parseResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta: %w", err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("servidor devolveu o estado %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("resposta ilegível do servidor: %w", err)
	}
	return nil
}

func (c *Client) parseOpResponse(resp *http.Response) error {
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	if err := c.parseResponse(resp, &body); err != nil {
		return err
	}
	if !body.Success {
		return fmt.Errorf("o servidor rejeitou a operação: %s", body.Error)
	}
	return nil
}
