package redmine

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/transport"
)

const (
	defaultPageSize = 25

	apiKeyHeader      = "X-Redmine-API-Key"
	impersonateHeader = "X-Redmine-Switch-User"
	octetStream       = "application/octet-stream"
)

// AuthMode defines the Redmine authentication variant.
type AuthMode string

const (
	AuthAPIKey AuthMode = "api_key"
	AuthBasic  AuthMode = "basic"
	AuthBearer AuthMode = "bearer"
	AuthOAuth2 AuthMode = "oauth2"
)

// Auth defines Redmine credentials. A zero Auth sends anonymous requests.
type Auth struct {
	Mode        AuthMode
	APIKey      string
	Username    string
	Password    string
	Token       string
	TokenSource oauth2.TokenSource
}

// Option configures the Redmine client.
type Option func(*config) error

type config struct {
	baseURL     string
	format      MimeType
	auth        Auth
	impersonate string
	transport   *transport.Client
	logger      transport.Logger
	pageSize    int
}

// Client is the Redmine REST API client. It is safe for concurrent use.
type Client struct {
	urls        *URLBuilder
	serializer  Serializer
	auth        Auth
	impersonate string
	transport   *transport.Client
	pageSize    int
}

// NewClient creates a Redmine client. The base URL is required; the format defaults
// to XML.
func NewClient(opts ...Option) (*Client, error) {
	cfg := config{format: MimeXML, pageSize: defaultPageSize}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	urls, err := NewURLBuilder(cfg.baseURL, cfg.format)
	if err != nil {
		return nil, err
	}
	serializer, err := NewSerializer(cfg.format)
	if err != nil {
		return nil, err
	}
	if err := cfg.auth.validate(); err != nil {
		return nil, err
	}

	if cfg.transport == nil {
		cfg.transport = transport.New(transport.WithLogger(cfg.logger))
	}

	return &Client{
		urls:        urls,
		serializer:  serializer,
		auth:        cfg.auth,
		impersonate: cfg.impersonate,
		transport:   cfg.transport,
		pageSize:    cfg.pageSize,
	}, nil
}

// WithBaseURL sets the Redmine host, e.g. https://redmine.example.com.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		cfg.baseURL = baseURL
		return nil
	}
}

// WithFormat selects XML or JSON bodies.
func WithFormat(format MimeType) Option {
	return func(cfg *config) error {
		if format != MimeXML && format != MimeJSON {
			return fmt.Errorf("redmine: unsupported format %q", format)
		}
		cfg.format = format
		return nil
	}
}

// WithAuth sets authentication mode and credentials.
func WithAuth(auth Auth) Option {
	return func(cfg *config) error {
		cfg.auth = auth
		return nil
	}
}

// WithAPIKey authenticates with the X-Redmine-API-Key header.
func WithAPIKey(key string) Option {
	return WithAuth(Auth{Mode: AuthAPIKey, APIKey: key})
}

// WithBasicAuth authenticates with login and password.
func WithBasicAuth(username, password string) Option {
	return WithAuth(Auth{Mode: AuthBasic, Username: username, Password: password})
}

// WithBearerToken sends a static bearer token.
func WithBearerToken(token string) Option {
	return WithAuth(Auth{Mode: AuthBearer, Token: token})
}

// WithTokenSource authenticates with OAuth2 tokens from ts.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return WithAuth(Auth{Mode: AuthOAuth2, TokenSource: ts})
}

// WithImpersonation sends every request as login. Requires an admin account.
func WithImpersonation(login string) Option {
	return func(cfg *config) error {
		cfg.impersonate = strings.TrimSpace(login)
		return nil
	}
}

// WithTransport injects shared transport.
func WithTransport(tr *transport.Client) Option {
	return func(cfg *config) error {
		cfg.transport = tr
		return nil
	}
}

// WithLogger logs requests of the default transport. Ignored with WithTransport.
func WithLogger(logger transport.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = logger
		return nil
	}
}

// WithPageSize sets the page size used by ListAll when the caller gives no limit.
func WithPageSize(size int) Option {
	return func(cfg *config) error {
		if size <= 0 {
			return fmt.Errorf("redmine: page size must be positive, got %d", size)
		}
		cfg.pageSize = size
		return nil
	}
}

// URLs returns the client's URL builder.
func (c *Client) URLs() *URLBuilder {
	return c.urls
}

// Serializer returns the serializer for the client's format.
func (c *Client) Serializer() Serializer {
	return c.serializer
}

func (a Auth) validate() error {
	switch a.Mode {
	case "":
		return nil
	case AuthAPIKey:
		if strings.TrimSpace(a.APIKey) == "" {
			return errors.New("redmine: api key is required for api key auth")
		}
	case AuthBasic:
		if strings.TrimSpace(a.Username) == "" {
			return errors.New("redmine: username is required for basic auth")
		}
	case AuthBearer:
		if strings.TrimSpace(a.Token) == "" {
			return errors.New("redmine: token is required for bearer auth")
		}
	case AuthOAuth2:
		if a.TokenSource == nil {
			return errors.New("redmine: token source is required for oauth2 auth")
		}
	default:
		return fmt.Errorf("redmine: unsupported auth mode %q", a.Mode)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, body []byte, contentType string) (*http.Request, error) {
	if c == nil {
		return nil, errors.New("redmine: client is nil")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("redmine: create request: %w", err)
	}

	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", c.serializer.MimeType().ContentType())
	if c.impersonate != "" {
		req.Header.Set(impersonateHeader, c.impersonate)
	}
	if err := c.applyAuth(req); err != nil {
		return nil, err
	}

	return req, nil
}

func (c *Client) applyAuth(req *http.Request) error {
	switch c.auth.Mode {
	case "":
		return nil
	case AuthAPIKey:
		req.Header.Set(apiKeyHeader, c.auth.APIKey)
	case AuthBasic:
		raw := c.auth.Username + ":" + c.auth.Password
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(raw)))
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.auth.Token)
	case AuthOAuth2:
		tok, err := c.auth.TokenSource.Token()
		if err != nil {
			return fmt.Errorf("redmine: obtain oauth2 token: %w", err)
		}
		tok.SetAuthHeader(req)
	default:
		return fmt.Errorf("redmine: unsupported auth mode %q", c.auth.Mode)
	}
	return nil
}

// do sends the request and maps non-2xx responses to typed errors.
func (c *Client) do(req *http.Request) ([]byte, error) {
	body, err := c.transport.DoBytes(req)
	if err == nil {
		return body, nil
	}

	var apiErr *transport.APIError
	if !errors.As(err, &apiErr) {
		return nil, err
	}
	rawURL := req.URL.Redacted()
	if apiErr.StatusCode == http.StatusUnprocessableEntity {
		unprocessable := &UnprocessableEntityError{URL: rawURL}
		if msgs, derr := DeserializeList[ErrorMessage](c.serializer, apiErr.Body); derr == nil {
			unprocessable.Errors = msgs.Items
		}
		return nil, unprocessable
	}
	return nil, &RequestFailedError{
		URL:        rawURL,
		StatusCode: apiErr.StatusCode,
		Status:     apiErr.Status,
		Body:       apiErr.Body,
		apiErr:     apiErr,
	}
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil, "")
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// send issues a request carrying a serialized body in the client's format.
func (c *Client) send(ctx context.Context, method, rawURL, payload string) ([]byte, error) {
	req, err := c.newRequest(ctx, method, rawURL, []byte(payload), c.serializer.MimeType().ContentType())
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) delete(ctx context.Context, rawURL string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, rawURL, nil, "")
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}
