package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ExercisesClient proxies the exercise catalogue; payloads pass through
// untouched.
type ExercisesClient struct {
	baseURL string
	http    *http.Client
}

func NewExercisesClient(baseURL string, client *http.Client) *ExercisesClient {
	return &ExercisesClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

func (c *ExercisesClient) Muscles(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := doJSON(ctx, c.http, http.MethodGet, c.baseURL+"/muscles", nil, &out); err != nil {
		return nil, fmt.Errorf("exercises muscles: %w", err)
	}
	return out, nil
}

func (c *ExercisesClient) Exercises(ctx context.Context, muscle string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/muscles/%s/exercises", c.baseURL, url.PathEscape(muscle))

	var out json.RawMessage
	if err := doJSON(ctx, c.http, http.MethodGet, u, nil, &out); err != nil {
		return nil, fmt.Errorf("exercises for %s: %w", muscle, err)
	}
	return out, nil
}
