// Package recordstore is the REST client of the Remote Record Store.
package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/spms/core"
	"github.com/trezcool/spms/core/placement"
	"github.com/trezcool/spms/core/record"
)

const placementPath = "placement"

type requestIDKey struct{}

// WithRequestID tags outgoing Record Store calls made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

type Client struct {
	baseURL  string
	http     *rest.Client
	log      core.Logger
	validate *validator.Validate
}

func NewClient(conf *core.Config, logger core.Logger, validate *validator.Validate) (*Client, error) {
	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.RecordStore.BaseURL, "RecordStore.BaseURL"),
		vala.IsNotNil(logger, "logger"),
		vala.IsNotNil(validate, "validate"),
	).Check()
	if err != nil {
		return nil, errors.Wrap(err, "invalid record store client arguments")
	}
	if _, err := url.ParseRequestURI(conf.RecordStore.BaseURL); err != nil {
		return nil, errors.Wrap(err, "parsing record store base URL")
	}

	return &Client{
		baseURL:  strings.TrimRight(conf.RecordStore.BaseURL, "/"),
		http:     &rest.Client{HTTPClient: &http.Client{Timeout: conf.RecordStore.Timeout}},
		log:      logger,
		validate: validate,
	}, nil
}

func (c *Client) Students() *Resource[record.Student] { return NewResource[record.Student](c) }
func (c *Client) Batches() *Resource[record.Batch] { return NewResource[record.Batch](c) }
func (c *Client) Assignments() *Resource[record.Assignment] { return NewResource[record.Assignment](c) }
func (c *Client) Contests() *Resource[record.Contest] { return NewResource[record.Contest](c) }
func (c *Client) Mocks() *Resource[record.Mock] { return NewResource[record.Mock](c) }

// Placement fetches the readiness report of a student.
func (c *Client) Placement(ctx context.Context, regID int) (*placement.Status, error) {
	resp, err := c.do(ctx, placementPath, rest.Get, c.url(placementPath, strconv.Itoa(regID)), nil)
	if err != nil {
		return nil, err
	}
	st, err := placement.Decode([]byte(resp.Body))
	return st, errors.Wrap(err, "decoding placement report")
}

// url joins the base URL with the escaped path segments.
func (c *Client) url(resource string, key ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString("/")
	b.WriteString(resource)
	if len(key) == 0 {
		b.WriteString("/")
		return b.String()
	}
	for _, seg := range key {
		b.WriteString("/")
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

// do sends one request and turns non-2xx answers into *APIError.
func (c *Client) do(ctx context.Context, resource string, method rest.Method, u string, body interface{}) (*rest.Response, error) {
	req := rest.Request{
		Method:  method,
		BaseURL: u,
		Headers: map[string]string{
			"Accept":       "application/json",
			"X-Request-ID": requestID(ctx),
		},
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		req.Headers["Content-Type"] = "application/json"
		req.Body = data
	}

	start := time.Now()
	resp, err := c.http.SendWithContext(ctx, req)
	requestDuration.WithLabelValues(resource, string(method)).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(resource, string(method), "error").Inc()
		return nil, errors.Wrapf(err, "%s %s", method, u)
	}
	requestsTotal.WithLabelValues(resource, string(method), strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, resp.Body)
	}
	return resp, nil
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}
