package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"daily-departed/internal/game"
)

// DaySize is the fixed number of subjects in every day document.
const DaySize = 10

var ErrDayNotFound = errors.New("day document not found")

// Client fetches day documents from the content provider. Any failure is
// terminal for the session: the caller surfaces "reload" to the player and
// never retries here.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// FetchDay retrieves the ten subjects for a daily key.
func (c *Client) FetchDay(ctx context.Context, key string) ([]game.Subject, error) {
	reqURL := c.baseURL + "/days/" + key + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrDayNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content provider returned status %d", resp.StatusCode)
	}

	var subjects []game.Subject
	if err := json.NewDecoder(resp.Body).Decode(&subjects); err != nil {
		return nil, fmt.Errorf("malformed day document: %w", err)
	}

	if err := validateDay(subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func validateDay(subjects []game.Subject) error {
	if len(subjects) != DaySize {
		return fmt.Errorf("day document has %d subjects, want %d", len(subjects), DaySize)
	}
	for _, subject := range subjects {
		if err := subject.Validate(); err != nil {
			return fmt.Errorf("malformed day document: %w", err)
		}
	}
	return nil
}
