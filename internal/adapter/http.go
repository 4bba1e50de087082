package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/utils"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/go-resty/resty/v2"
)

// DemoSessionHeader carries the demo session id on ephemeral requests. The
// backend scopes demo records to it.
const DemoSessionHeader = "X-Demo-Session"

const entityPath = "/api/entities/{entityType}/{id}"

type httpRemoteAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	demoSession string
	now         func() time.Time

	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs an HTTP/REST implementation of
// [RemoteAdapter]. It normalises and validates the base URL from
// cfg.HTTPAddress and configures the underlying HTTP client with the resolved
// base URL and request timeout. cfg.Token, when set, is used as bearer token.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a valid
// URL.
func NewHTTPRemoteAdapter(cfg config.Adapter, logger *logger.Logger) (*httpRemoteAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient().WithRetries(2, 200*time.Millisecond)
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	a := &httpRemoteAdapter{
		client:      client,
		demoSession: utils.NewUUIDGenerator().Generate(),
		now:         time.Now,
		logger:      logger,
	}
	a.SetToken(cfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores token (whitespace-trimmed) for the Authorization header of
// all subsequent requests.
func (h *httpRemoteAdapter) SetToken(token string) {
	token = strings.TrimSpace(token)

	h.mu.Lock()
	h.token = token
	h.mu.Unlock()

	if token == "" {
		return
	}
	if sub, err := utils.TokenSubject(token); err == nil {
		h.logger.Debug().Str("subject", sub).Msg("remote token set")
	} else {
		h.logger.Warn().Err(err).Msg("remote token is not a JWT")
	}
}

// Token returns the bearer token currently held by the adapter.
func (h *httpRemoteAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// DemoSession returns the id sent with ephemeral requests.
func (h *httpRemoteAdapter) DemoSession() string {
	return h.demoSession
}

// request builds a request with auth and demo headers. A token whose exp
// claim has passed fails here with ErrTokenExpired, before any round trip.
func (h *httpRemoteAdapter) request(ctx context.Context, ephemeral bool) (*resty.Request, error) {
	req := h.client.R().SetContext(ctx)

	if token := h.Token(); token != "" {
		exp, err := utils.TokenExpiry(token)
		if err == nil && !h.now().Before(exp) {
			return nil, ErrTokenExpired
		}
		req.SetAuthToken(token)
	}
	if ephemeral {
		req.SetHeader(DemoSessionHeader, h.demoSession)
	}
	return req, nil
}

func transportError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s request: %w", op, err)
	}
	return fmt.Errorf("%w: %s request: %w", ErrRemoteUnavailable, op, err)
}

// Get implements [RemoteAdapter]. GET /api/entities/{entityType}/{id}.
func (h *httpRemoteAdapter) Get(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) (models.Record, error) {
	req, err := h.request(ctx, ephemeral)
	if err != nil {
		return nil, err
	}

	var rec models.RemoteRecord
	resp, err := req.
		SetPathParams(map[string]string{"entityType": entityType.String(), "id": id}).
		SetResult(&rec).
		Get(entityPath)
	if err != nil {
		return nil, transportError("get", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return models.Record(rec.Payload), nil
}

// Put implements [RemoteAdapter]. PUT /api/entities/{entityType}/{id}.
func (h *httpRemoteAdapter) Put(ctx context.Context, entityType models.EntityType, id string, record models.Record, ephemeral bool) error {
	req, err := h.request(ctx, ephemeral)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{"entityType": entityType.String(), "id": id}).
		SetBody(models.RemoteRecord{EntityType: entityType, ID: id, Payload: json.RawMessage(record)}).
		Put(entityPath)
	if err != nil {
		return transportError("put", err)
	}
	return mapHTTPError(resp)
}

// Delete implements [RemoteAdapter]. DELETE /api/entities/{entityType}/{id};
// a 404 counts as success.
func (h *httpRemoteAdapter) Delete(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) error {
	req, err := h.request(ctx, ephemeral)
	if err != nil {
		return err
	}

	resp, err := req.
		SetPathParams(map[string]string{"entityType": entityType.String(), "id": id}).
		Delete(entityPath)
	if err != nil {
		return transportError("delete", err)
	}
	if err = mapHTTPError(resp); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// List implements [RemoteAdapter]. GET /api/entities/{entityType}.
func (h *httpRemoteAdapter) List(ctx context.Context, entityType models.EntityType, ephemeral bool) ([]string, error) {
	req, err := h.request(ctx, ephemeral)
	if err != nil {
		return nil, err
	}

	var list models.RemoteIDList
	resp, err := req.
		SetPathParam("entityType", entityType.String()).
		SetResult(&list).
		Get("/api/entities/{entityType}")
	if err != nil {
		return nil, transportError("list", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if list.IDs == nil {
		list.IDs = []string{}
	}
	return list.IDs, nil
}

// Close implements [RemoteAdapter].
func (h *httpRemoteAdapter) Close() error {
	h.client.GetClient().CloseIdleConnections()
	return nil
}
