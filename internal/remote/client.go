// Package remote implements the HTTP client for the upstream recipe service.
package remote

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// wireDateLayout is the timestamp format the service expects for the
// last_updated query parameter.
const wireDateLayout = "2006-01-02 15:04:05"

// authSeed is the static application token the service recognizes. Its MD5
// hex digest is sent verbatim as the Authorization header on every request.
// Kept for wire compatibility with the existing backend; this is a shared
// secret, not a real authentication scheme.
const authSeed = "aaron"

var (
	// ErrNetwork is returned when the request could not complete at the
	// transport level (timeout, connection refused, DNS failure).
	ErrNetwork = errors.New("network error")
	// ErrProtocol is returned when the service answered with a non-200 status.
	ErrProtocol = errors.New("protocol error")
	// ErrDecode is returned when the response body could not be decoded.
	ErrDecode = errors.New("malformed response")
)

// StatusError reports a non-200 response using the service's status taxonomy.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d. %s", e.Code, StatusText(e.Code))
}

// Unwrap makes StatusError match ErrProtocol via errors.Is.
func (e *StatusError) Unwrap() error {
	return ErrProtocol
}

// StatusText maps a status code to the taxonomy surfaced to callers.
func StatusText(code int) string {
	switch code {
	case http.StatusOK:
		return "Ok"
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusUnauthorized:
		return "Unauthorized Access"
	case http.StatusInternalServerError:
		return "Internal Server Error"
	default:
		return fmt.Sprintf("Status Code Unknown: %d", code)
	}
}

// Client is a client for the recipe service API.
type Client struct {
	BaseURL   string
	authToken string
	client    *http.Client
}

// New creates a new Client with the given base URL and request timeout.
// The shared-secret Authorization token is computed once here.
func New(baseURL string, timeout time.Duration) *Client {
	sum := md5.Sum([]byte(authSeed))
	return &Client{
		BaseURL:   baseURL,
		authToken: hex.EncodeToString(sum[:]),
		client:    &http.Client{Timeout: timeout},
	}
}

// RecipesPayload is the response body of GET /recipes.
type RecipesPayload struct {
	RecentlyAddedCount int            `json:"recently_added_count"`
	Recipes            []RecipeRecord `json:"recipes"`
}

// RecipeRecord is one recipe in the wire format.
type RecipeRecord struct {
	Title           string              `json:"title"`
	Category        string              `json:"category"`
	PreparationTime int                 `json:"preparation_time"`
	Servings        int                 `json:"servings"`
	Description     string              `json:"description"`
	Ingredients     []IngredientRecord  `json:"ingredients"`
	Instructions    []InstructionRecord `json:"instructions"`
}

// IngredientRecord is one ingredient line in the wire format. The trailing
// underscore in comment_ is part of the wire contract.
type IngredientRecord struct {
	Quantity    float64 `json:"quantity"`
	Measurement string  `json:"measurement"`
	Ingredient  string  `json:"ingredient"`
	Comment     string  `json:"comment_"`
}

// InstructionRecord is one preparation step in the wire format.
type InstructionRecord struct {
	Instruction string `json:"instruction"`
}

// Category is one entry of the GET /categories response.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FetchRecipes requests every recipe changed since the given watermark.
// An empty payload (count 0, no recipes) is a successful response, not an
// error; callers distinguish "no new data" from "request failed" by the
// returned error alone.
func (c *Client) FetchRecipes(ctx context.Context, since time.Time) (*RecipesPayload, error) {
	endpoint := fmt.Sprintf("%s/recipes?last_updated=%s",
		c.BaseURL, url.QueryEscape(since.Format(wireDateLayout)))

	var payload RecipesPayload
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchCategories requests the complete category list.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, c.BaseURL+"/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// get performs one authorized GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
