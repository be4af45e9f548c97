package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	shttp "github.com/seguido/seguido/pkg/http"
)

//go:generate mockgen -destination=mocks/tmdb.go -package=mocks github.com/seguido/seguido/pkg/tmdb ClientInterface

// ClientInterface is the metadata catalog consumed by the tracker.
type ClientInterface interface {
	SearchTV(ctx context.Context, query string) (*SearchTVResponse, error)
	SeriesDetails(ctx context.Context, id int64) (*SeriesDetails, error)
	SeasonDetails(ctx context.Context, id int64, seasonNumber int) (*SeasonDetails, error)
}

// SearchTVResponse is a page of tv search results
type SearchTVResponse struct {
	Page         int              `json:"page"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
	Results      []SearchTVResult `json:"results"`
}

type SearchTVResult struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
}

// SeriesDetails is the full show record, including per-season summaries with
// declared episode counts that may include unaired episodes.
type SeriesDetails struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Overview         string          `json:"overview"`
	PosterPath       string          `json:"poster_path"`
	FirstAirDate     string          `json:"first_air_date"`
	VoteAverage      float64         `json:"vote_average"`
	Status           string          `json:"status"`
	NumberOfEpisodes int             `json:"number_of_episodes"`
	EpisodeRunTime   []int           `json:"episode_run_time"`
	Genres           []Genre         `json:"genres"`
	Seasons          []SeasonSummary `json:"seasons"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SeasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
}

// SeasonDetails carries the episode list of one season. AirDate may be empty
// for unscheduled episodes.
type SeasonDetails struct {
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	Episodes     []Episode `json:"episodes"`
}

type Episode struct {
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	AirDate       string `json:"air_date"`
	Runtime       *int   `json:"runtime"`
}

// Client queries the TMDB v3 API.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     shttp.HTTPClient
}

type ClientOption func(*Client)

// WithHTTPClient sets the http client used for requests
func WithHTTPClient(c shttp.HTTPClient) ClientOption {
	return func(client *Client) {
		client.http = c
	}
}

// WithLanguage sets the language passed on every request
func WithLanguage(language string) ClientOption {
	return func(client *Client) {
		client.language = language
	}
}

// New creates a tmdb client given the api base url and key
func New(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("tmdb base url is empty")
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    shttp.NewRateLimitedClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SearchTV queries the catalog for tv shows matching query
func (c *Client) SearchTV(ctx context.Context, query string) (*SearchTVResponse, error) {
	out := new(SearchTVResponse)
	err := c.get(ctx, "/3/search/tv", url.Values{"query": []string{query}}, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// SeriesDetails fetches the full show record by tmdb id
func (c *Client) SeriesDetails(ctx context.Context, id int64) (*SeriesDetails, error) {
	out := new(SeriesDetails)
	err := c.get(ctx, "/3/tv/"+strconv.FormatInt(id, 10), nil, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// SeasonDetails fetches the episode list of one season
func (c *Client) SeasonDetails(ctx context.Context, id int64, seasonNumber int) (*SeasonDetails, error) {
	out := new(SeasonDetails)
	path := fmt.Sprintf("/3/tv/%d/season/%d", id, seasonNumber)
	err := c.get(ctx, path, nil, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid tmdb base url: %w", err)
	}
	u.Path = path

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected tmdb response status: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
