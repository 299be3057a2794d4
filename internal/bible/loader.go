package bible

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultLocation is the dataset reference used when none is configured.
const DefaultLocation = "genesis.json"

// Loader fetches the dataset once, either over HTTP or from the local
// filesystem. It never retries.
type Loader struct {
	httpClient *http.Client
}

func NewLoader() *Loader {
	return &Loader{
		httpClient: &http.Client{},
	}
}

// NewLoaderWithClient uses c for remote locations.
func NewLoaderWithClient(c *http.Client) *Loader {
	if c == nil {
		c = &http.Client{}
	}
	return &Loader{httpClient: c}
}

// Load fetches and decodes the dataset at location. Every error it returns
// satisfies errors.Is(err, ErrDataUnavailable).
func (l *Loader) Load(ctx context.Context, location string) (*Dataset, error) {
	if location == "" {
		location = DefaultLocation
	}

	if isRemote(location) {
		return l.fetch(ctx, location)
	}
	return l.readFile(location)
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (l *Loader) fetch(ctx context.Context, url string) (*Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s returned status %d: %s", ErrDataUnavailable, url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return Decode(resp.Body)
}

func (l *Loader) readFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer file.Close()

	return Decode(file)
}
