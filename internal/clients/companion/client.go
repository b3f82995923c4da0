package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/observability"
	"github.com/KirkDiggler/dnd-companion/internal/uuid"
)

const (
	// RequestIDHeader carries the per call request ID
	RequestIDHeader = "X-Request-ID"

	defaultTimeout = 10 * time.Second
)

// Default failure messages, used when the API sends no message of its own
const (
	msgRegisterFailed    = "failed to create account"
	msgLoginFailed       = "failed to log in"
	msgLogoutFailed      = "failed to log out"
	msgCurrentUserFailed = "failed to fetch current user"
	msgVerifyFailed      = "failed to verify email"
	msgListFailed        = "failed to list characters"
	msgGetFailed         = "failed to get character"
	msgCreateFailed      = "failed to create character"
	msgUpdateFailed      = "failed to update character"
	msgDeleteFailed      = "failed to delete character"
)

// Config holds the client dependencies
type Config struct {
	BaseURL       string
	HTTPClient    *http.Client
	Timeout       time.Duration
	Tokens        TokenSource
	UUIDGenerator uuid.Generator
	Logger        *zap.Logger
}

type client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	uuidGen    uuid.Generator
	logger     *zap.Logger
}

// New creates a companion API client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("companion client config cannot be nil")
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, dnderr.InvalidArgumentf("invalid companion api url %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = TokenSourceFunc(nil)
	}

	uuidGen := cfg.UUIDGenerator
	if uuidGen == nil {
		uuidGen = uuid.NewGoogleUUIDGenerator()
	}

	return &client{
		baseURL:    base,
		httpClient: httpClient,
		tokens:     tokens,
		uuidGen:    uuidGen,
		logger:     observability.OrNop(cfg.Logger),
	}, nil
}

func (c *client) Register(ctx context.Context, input *account.RegisterInput) (*account.AuthResponse, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("register input cannot be nil")
	}

	out := &account.AuthResponse{}
	if err := c.do(ctx, &call{
		method:     http.MethodPost,
		path:       "auth/register",
		body:       input,
		out:        out,
		defaultMsg: msgRegisterFailed,
		joinErrors: true,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Login(ctx context.Context, input *account.LoginInput) (*account.AuthResponse, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("login input cannot be nil")
	}

	out := &account.AuthResponse{}
	if err := c.do(ctx, &call{
		method:     http.MethodPost,
		path:       "auth/login",
		body:       input,
		out:        out,
		defaultMsg: msgLoginFailed,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Logout(ctx context.Context) error {
	return c.do(ctx, &call{
		method:     http.MethodPost,
		path:       "auth/logout",
		defaultMsg: msgLogoutFailed,
	})
}

func (c *client) CurrentUser(ctx context.Context) (*account.User, error) {
	out := &account.User{}
	if err := c.do(ctx, &call{
		method:     http.MethodGet,
		path:       "auth/me",
		out:        out,
		defaultMsg: msgCurrentUserFailed,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) VerifyEmail(ctx context.Context, token string) (*account.MessageResponse, error) {
	if token == "" {
		return nil, dnderr.Validation("verification token not found").WithMeta("field", "token")
	}

	out := &account.MessageResponse{}
	if err := c.do(ctx, &call{
		method:     http.MethodGet,
		path:       "auth/verify-email",
		query:      url.Values{"token": []string{token}},
		out:        out,
		defaultMsg: msgVerifyFailed,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ListCharacters(ctx context.Context) ([]*character.Character, error) {
	var raw json.RawMessage
	if err := c.do(ctx, &call{
		method:     http.MethodGet,
		path:       "characters",
		out:        &raw,
		defaultMsg: msgListFailed,
	}); err != nil {
		return nil, err
	}
	return decodeCharacterList(raw)
}

func (c *client) GetCharacter(ctx context.Context, id string) (*character.Character, error) {
	if err := validateCharacterID(id); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.do(ctx, &call{
		method:      http.MethodGet,
		path:        "characters/" + id,
		rawPath:     "characters/" + url.PathEscape(id),
		out:         &raw,
		defaultMsg:  msgGetFailed,
		characterID: id,
	}); err != nil {
		return nil, err
	}
	return decodeCharacter(raw)
}

func (c *client) CreateCharacter(ctx context.Context, char *character.Character) (*character.Character, error) {
	if char == nil {
		return nil, dnderr.InvalidArgument("character cannot be nil")
	}

	var raw json.RawMessage
	if err := c.do(ctx, &call{
		method:     http.MethodPost,
		path:       "characters",
		body:       char,
		out:        &raw,
		defaultMsg: msgCreateFailed,
	}); err != nil {
		return nil, err
	}
	return decodeCharacter(raw)
}

func (c *client) UpdateCharacter(ctx context.Context, id string, char *character.Character) (*character.Character, error) {
	if err := validateCharacterID(id); err != nil {
		return nil, err
	}
	if char == nil {
		return nil, dnderr.InvalidArgument("character cannot be nil")
	}

	var raw json.RawMessage
	if err := c.do(ctx, &call{
		method:      http.MethodPut,
		path:        "characters/" + id,
		rawPath:     "characters/" + url.PathEscape(id),
		body:        char,
		out:         &raw,
		defaultMsg:  msgUpdateFailed,
		characterID: id,
	}); err != nil {
		return nil, err
	}
	return decodeCharacter(raw)
}

func (c *client) DeleteCharacter(ctx context.Context, id string) error {
	if err := validateCharacterID(id); err != nil {
		return err
	}

	return c.do(ctx, &call{
		method:      http.MethodDelete,
		path:        "characters/" + id,
		rawPath:     "characters/" + url.PathEscape(id),
		defaultMsg:  msgDeleteFailed,
		characterID: id,
	})
}

// validateCharacterID rejects IDs that would resolve to another endpoint
func validateCharacterID(id string) error {
	switch id {
	case "":
		return dnderr.InvalidArgument("character ID is required")
	case ".", "..":
		return dnderr.InvalidArgument("invalid character ID").WithMeta("character_id", id)
	}
	return nil
}

// call describes one API round trip
type call struct {
	method     string
	path       string
	rawPath    string // escaped form of path when it carries user input
	query      url.Values
	body       any
	out        any
	defaultMsg string

	// joinErrors falls back to the joined errors list when the body has no message
	joinErrors  bool
	characterID string
}

func (c *client) do(ctx context.Context, cl *call) error {
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: cl.path, RawPath: cl.rawPath, RawQuery: cl.query.Encode()})

	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return dnderr.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, endpoint.String(), body)
	if err != nil {
		return dnderr.Wrap(err, "failed to build request")
	}

	requestID := uuid.RequestID(ctx, c.uuidGen)
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger := c.logger.With(
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("companion api request failed", zap.Error(err))
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, cl.defaultMsg).
			WithMeta("request_id", requestID)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, cl.defaultMsg).
			WithMeta("request_id", requestID)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := errorMessage(respBody, cl.defaultMsg, cl.joinErrors)
		logger.Debug("companion api returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", message))
		apiErr := dnderr.FromHTTPStatus(resp.StatusCode, message).WithMeta("request_id", requestID)
		if cl.characterID != "" {
			apiErr = apiErr.WithMeta("character_id", cl.characterID)
		}
		return apiErr
	}

	if cl.out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, cl.out); err != nil {
		return dnderr.Wrap(err, "failed to decode response").WithMeta("request_id", requestID)
	}
	return nil
}

// errorMessage picks the message out of an error body
func errorMessage(body []byte, defaultMsg string, joinErrors bool) string {
	apiErr := &account.APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil {
		return defaultMsg
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if joinErrors && len(apiErr.Errors) > 0 {
		return strings.Join(apiErr.Errors, ", ")
	}
	return defaultMsg
}

// decodeCharacterList accepts a bare array or a {"characters": [...]} envelope
func decodeCharacterList(raw json.RawMessage) ([]*character.Character, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []*character.Character{}, nil
	}

	if trimmed[0] == '[' {
		var list []*character.Character
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, dnderr.Wrap(err, "failed to decode characters")
		}
		return list, nil
	}

	envelope := struct {
		Characters []*character.Character `json:"characters"`
	}{}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, dnderr.Wrap(err, "failed to decode characters")
	}
	if envelope.Characters == nil {
		return []*character.Character{}, nil
	}
	return envelope.Characters, nil
}

// decodeCharacter accepts a bare character or a {"character": {...}} envelope
func decodeCharacter(raw json.RawMessage) (*character.Character, error) {
	envelope := struct {
		Character *character.Character `json:"character"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, dnderr.Wrap(err, "failed to decode character")
	}
	if envelope.Character != nil {
		return envelope.Character, nil
	}

	char := &character.Character{}
	if err := json.Unmarshal(raw, char); err != nil {
		return nil, dnderr.Wrap(err, "failed to decode character")
	}
	return char, nil
}
