package dnd5e

import (
	"net/http"
	"net/url"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"

	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e"
)

// TODO: add context to functions once the upstream client accepts one
type client struct {
	client dnd5e.Interface
}

type Config struct {
	HttpClient *http.Client

	// BaseURL points the client at a mirror of the public API. Only the
	// scheme and host are used; an empty value keeps the public endpoint.
	BaseURL string
	Timeout time.Duration
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("dnd5e client config cannot be nil")
	}

	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil || base.Host == "" {
			return nil, dnderr.InvalidArgumentf("invalid dnd5e base url %q", cfg.BaseURL)
		}
		rewritten := *httpClient
		rewritten.Transport = &hostRewriter{base: base, next: httpClient.Transport}
		httpClient = &rewritten
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: httpClient,
	})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to create dnd5e api client")
	}

	return &client{
		client: dndClient,
	}, nil
}

func (c *client) ListClasses() ([]*rulebook.Class, error) {
	response, err := c.client.ListClasses()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to list classes")
	}

	return apiReferenceItemsToClasses(response), nil
}

func (c *client) GetClass(key string) (*rulebook.Class, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("class key is required")
	}

	response, err := c.client.GetClass(key)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get class").
			WithMeta("class_key", key)
	}
	if response == nil {
		return nil, dnderr.NotFoundf("class %s not found", key).WithMeta("class_key", key)
	}

	return apiClassToClass(response), nil
}

// hostRewriter sends every request to the configured host
type hostRewriter struct {
	base *url.URL
	next http.RoundTripper
}

func (h *hostRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = h.base.Scheme
	out.URL.Host = h.base.Host
	out.Host = h.base.Host

	next := h.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(out)
}
