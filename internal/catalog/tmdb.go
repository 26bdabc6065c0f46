// Package catalog wraps the TMDB REST API behind a small typed client.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/utils"
)

const defaultTimeout = 10 * time.Second

// Poster sizes exposed by the TMDB image CDN.
const (
	PosterSizeSmall    = "w185"
	PosterSizeMedium   = "w342"
	PosterSizeLarge    = "w500"
	PosterSizeOriginal = "original"
)

// Movie is the subset of TMDB movie fields the frontend consumes.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	BackdropPath string `json:"backdrop_path,omitempty"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
	Genres      []Genre `json:"genres,omitempty"`
	Runtime     int     `json:"runtime,omitempty"`
	Tagline     string  `json:"tagline,omitempty"`
}

// Genre is a TMDB genre entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Page is one page of TMDB results.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type genreList struct {
	Genres []Genre `json:"genres"`
}

// APIError is a non-2xx response from TMDB.
type APIError struct {
	StatusCode int
	Message    string `json:"status_message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the TMDB v3 API.
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpClient   *http.Client
	logger       logger.Logger
}

// NewClient builds a TMDB client. baseURL and imageBaseURL must not end
// with a slash.
func NewClient(baseURL, imageBaseURL, apiKey string, log logger.Logger) *Client {
	return &Client{
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		logger:       log,
	}
}

// SearchMovies searches by title. Page numbers start at 1.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*Page, error) {
	p := &Page{}
	err := c.get(ctx, "/search/movie", url.Values{
		"query": {query},
		"page":  {pageParam(page)},
	}, p)
	return p, err
}

// MovieDetails fetches a single movie by TMDB id.
func (c *Client) MovieDetails(ctx context.Context, movieID int) (*Movie, error) {
	m := &Movie{}
	err := c.get(ctx, "/movie/"+strconv.Itoa(movieID), nil, m)
	return m, err
}

// Popular lists currently popular movies.
func (c *Client) Popular(ctx context.Context, page int) (*Page, error) {
	p := &Page{}
	err := c.get(ctx, "/movie/popular", url.Values{"page": {pageParam(page)}}, p)
	return p, err
}

// Trending lists trending movies. window is "day" or "week".
func (c *Client) Trending(ctx context.Context, window string, page int) (*Page, error) {
	if window != "day" && window != "week" {
		window = "week"
	}
	p := &Page{}
	err := c.get(ctx, "/trending/movie/"+window, url.Values{"page": {pageParam(page)}}, p)
	return p, err
}

// TopRated lists the highest rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (*Page, error) {
	p := &Page{}
	err := c.get(ctx, "/movie/top_rated", url.Values{"page": {pageParam(page)}}, p)
	return p, err
}

// Upcoming lists upcoming releases.
func (c *Client) Upcoming(ctx context.Context, page int) (*Page, error) {
	p := &Page{}
	err := c.get(ctx, "/movie/upcoming", url.Values{"page": {pageParam(page)}}, p)
	return p, err
}

// Genres fetches the movie genre list.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	list := &genreList{}
	if err := c.get(ctx, "/genre/movie/list", nil, list); err != nil {
		return nil, err
	}
	return list.Genres, nil
}

// MoviesByGenre discovers movies for one genre, sorted by popularity.
func (c *Client) MoviesByGenre(ctx context.Context, genreID, page int) (*Page, error) {
	p := &Page{}
	err := c.get(ctx, "/discover/movie", url.Values{
		"with_genres": {strconv.Itoa(genreID)},
		"sort_by":     {"popularity.desc"},
		"page":        {pageParam(page)},
	}, p)
	return p, err
}

// Recommendations lists movies similar to the given one.
func (c *Client) Recommendations(ctx context.Context, movieID, page int) (*Page, error) {
	p := &Page{}
	err := c.get(ctx, "/movie/"+strconv.Itoa(movieID)+"/recommendations",
		url.Values{"page": {pageParam(page)}}, p)
	return p, err
}

// ImageURL resolves a TMDB image path against the CDN for one size.
// An empty path returns an empty string.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = PosterSizeLarge
	}
	return c.imageBaseURL + "/" + size + path
}

// ImageURLs resolves a path for every exported poster size.
func (c *Client) ImageURLs(path string) map[string]string {
	sizes := []string{PosterSizeSmall, PosterSizeMedium, PosterSizeLarge, PosterSizeOriginal}
	out := make(map[string]string, len(sizes))
	for _, size := range sizes {
		out[size] = c.ImageURL(path, size)
	}
	return out
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build tmdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// TMDB error bodies are small; a decode failure keeps the status code
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		c.logger.Warn("tmdb request rejected",
			logger.String("path", path),
			logger.Int("status", resp.StatusCode))
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode tmdb response: %w", err)
	}
	return nil
}

func pageParam(page int) string {
	if page < 1 {
		page = 1
	}
	return strconv.Itoa(page)
}
