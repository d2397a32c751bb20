package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const productsPath = "/inventory/products"

// HTTPRepository talks to the remote inventory service.
type HTTPRepository struct {
	baseURL string
	client  *http.Client
	logger  logger.ZapLogger
}

func NewHTTPRepository(baseURL string, timeout time.Duration, log logger.ZapLogger) *HTTPRepository {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &HTTPRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		logger: log,
	}
}

func (r *HTTPRepository) List(ctx context.Context, params *dto.ListParams) (*model.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("size", strconv.Itoa(params.Size))
	if field, ok := remoteSortFields[params.SortBy]; ok {
		q.Set("sortBy", field)
		q.Set("sortOrder", string(model.ParseSortOrder(string(params.SortOrder))))
	}

	var resp listResponse
	if err := r.do(ctx, http.MethodGet, productsPath+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return resp.toPage(params)
}

func (r *HTTPRepository) Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	var created remoteProduct
	if err := r.do(ctx, http.MethodPost, productsPath, toRemote(input), &created); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	p, err := created.toModel()
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

func (r *HTTPRepository) Update(ctx context.Context, id int64, input *dto.UpdateProductInput) error {
	body := toRemote((*dto.CreateProductInput)(input))
	if err := r.do(ctx, http.MethodPut, productPath(id, ""), body, nil); err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	return nil
}

func (r *HTTPRepository) Delete(ctx context.Context, id int64) error {
	if err := r.do(ctx, http.MethodDelete, productPath(id, ""), nil, nil); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// The service exposes the two stock toggles with different verbs.
func (r *HTTPRepository) MarkOutOfStock(ctx context.Context, id int64) error {
	if err := r.do(ctx, http.MethodPost, productPath(id, "outofstock"), nil, nil); err != nil {
		return fmt.Errorf("mark product %d out of stock: %w", id, err)
	}
	return nil
}

func (r *HTTPRepository) MarkInStock(ctx context.Context, id int64) error {
	if err := r.do(ctx, http.MethodPut, productPath(id, "instock"), nil, nil); err != nil {
		return fmt.Errorf("mark product %d in stock: %w", id, err)
	}
	return nil
}

func productPath(id int64, action string) string {
	p := productsPath + "/" + strconv.FormatInt(id, 10)
	if action != "" {
		p += "/" + action
	}
	return p
}

// do sends one request. out may be nil; an empty response body is accepted.
func (r *HTTPRepository) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", product.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	r.logger.Debug("inventory call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", product.ErrUnavailable, err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(snippet))

	var kind error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		kind = product.ErrNotFound
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		kind = product.ErrUnavailable
	default:
		kind = product.ErrInvalidProduct
	}
	if msg == "" {
		return fmt.Errorf("%w: status %d", kind, resp.StatusCode)
	}
	return fmt.Errorf("%w: status %d: %s", kind, resp.StatusCode, msg)
}
