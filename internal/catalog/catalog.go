package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"time"

	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/YukiMaitani/tcgp-card-data/internal/domain"
	errpkg "github.com/YukiMaitani/tcgp-card-data/internal/errors"
)

// Card is one entry of a set in the catalog manifest.
type Card struct {
	Number string `json:"number" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

// Set groups the cards released under one expansion code.
type Set struct {
	Code  string `json:"code" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Cards []Card `json:"cards" validate:"required,min=1,dive"`
}

// Manifest is the remote catalog document describing all known sets.
type Manifest struct {
	Version string `json:"version"`
	Sets    []Set  `json:"sets" validate:"required,min=1,dive"`
}

// Client fetches and validates the catalog manifest.
type Client struct {
	url        string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewClient creates a catalog Client for the given manifest URL.
func NewClient(manifestURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:        manifestURL,
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(),
		logger:     logger,
	}
}

// FetchManifest downloads and validates the catalog manifest.
func (c *Client) FetchManifest(ctx context.Context) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errpkg.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", errpkg.ErrCatalogUnavailable, resp.Status)
	}

	var manifest Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("decode catalog manifest: %w", err)
	}

	if err := c.validate.Struct(&manifest); err != nil {
		return nil, fmt.Errorf("invalid catalog manifest: %w", err)
	}

	c.logger.Info("catalog manifest fetched", "version", manifest.Version, "sets", len(manifest.Sets))
	return &manifest, nil
}

// BuildTasks expands the manifest into the ordered task sequence: one task
// per card and locale. setCodes narrows the selection; an empty list means
// every set. Destinations are unique because set code, card number, and
// locale are unique within the manifest.
func BuildTasks(m *Manifest, baseURL string, locales, setCodes []string) ([]domain.Task, error) {
	selected := m.Sets
	if len(setCodes) > 0 {
		byCode := make(map[string]Set, len(m.Sets))
		for _, s := range m.Sets {
			byCode[s.Code] = s
		}

		selected = make([]Set, 0, len(setCodes))
		for _, code := range setCodes {
			s, ok := byCode[code]
			if !ok {
				return nil, fmt.Errorf("%w: %s", errpkg.ErrSetNotFound, code)
			}
			selected = append(selected, s)
		}
	}

	var tasks []domain.Task
	for _, locale := range locales {
		for _, set := range selected {
			for _, card := range set.Cards {
				tasks = append(tasks, domain.Task{
					Source:      assetURL(baseURL, locale, set.Code, card.Number),
					Destination: filepath.Join(locale, set.Code, card.Number+".webp"),
					Label:       fmt.Sprintf("%s/%s (%s)", set.Code, card.Number, locale),
				})
			}
		}
	}

	return tasks, nil
}

func assetURL(baseURL, locale, setCode, number string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Endpoints are validated before task building; keep a sane fallback.
		return baseURL + "/" + path.Join(locale, setCode, number+".webp")
	}
	u.Path = path.Join(u.Path, locale, setCode, number+".webp")
	return u.String()
}
