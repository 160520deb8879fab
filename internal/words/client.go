// internal/words/client.go
//
// HTTP definition source backed by the Free Dictionary API.
// A 404 means "no such word" and is not an error. 5xx responses and network
// errors are retried once.

package words

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public Free Dictionary endpoint.
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Client looks words up over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        zerolog.Logger
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.With().Str("adapter", "freedict").Logger(),
	}
}

// apiEntry is one element of the API's response array.
type apiEntry struct {
	Word     string       `json:"word"`
	Meanings []apiMeaning `json:"meanings"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
}

// LookupDefinition fetches word and returns its first definition.
func (c *Client) LookupDefinition(ctx context.Context, word string) (Definition, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(strings.ToLower(word))

	resp, err := c.doWithRetry(ctx, reqURL, word)
	if err != nil {
		return Definition{}, fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Definition{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Definition{}, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Definition{}, fmt.Errorf("freedict: read body: %w", err)
	}
	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return Definition{}, fmt.Errorf("freedict: decode json: %w", err)
	}

	def := firstDefinition(entries)
	c.log.Debug().Str("word", word).Bool("found", def.Found).Msg("freedict response")
	return def, nil
}

// doWithRetry issues a GET, retrying once on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, reqURL, word string) (*http.Response, error) {
	resp, err := c.get(ctx, reqURL)
	if err == nil && resp.StatusCode < 500 {
		return resp, nil
	}
	if ctx.Err() != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, ctx.Err()
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.Warn().Str("word", word).Str("reason", reason).Msg("freedict retry")

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}
	return c.get(ctx, reqURL)
}

func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

// firstDefinition picks the first non-empty definition across all entries.
// An array with entries but no definitions still counts as found.
func firstDefinition(entries []apiEntry) Definition {
	if len(entries) == 0 {
		return Definition{}
	}
	for _, e := range entries {
		for _, m := range e.Meanings {
			for _, d := range m.Definitions {
				if strings.TrimSpace(d.Definition) != "" {
					return Definition{Found: true, PartOfSpeech: m.PartOfSpeech, Text: d.Definition}
				}
			}
		}
	}
	return Definition{Found: true}
}
