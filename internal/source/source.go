package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/arcanaland/flashdeck/internal/card"
)

// DefaultSource is used when no source is configured
const DefaultSource = "content/networking.json"

// Fetcher reads raw card records from an HTTP(S) URL or a local file.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher creates a fetcher with a bounded HTTP client
func NewFetcher() *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: 15 * time.Second}}
}

// IsURL reports whether src should be fetched over HTTP
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch returns the raw records of src. Failures wrap card.ErrFetch or
// card.ErrParse.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]any, error) {
	var body []byte
	var err error
	if IsURL(src) {
		body, err = f.fetchURL(ctx, src)
	} else {
		body, err = os.ReadFile(src)
		if err != nil {
			err = &card.FetchError{Source: src, Err: err}
		}
	}
	if err != nil {
		return nil, err
	}
	return Parse(src, body)
}

func (f *Fetcher) fetchURL(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, &card.FetchError{Source: src, Err: err}
	}
	// Always go to the origin
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &card.FetchError{Source: src, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &card.FetchError{Source: src, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &card.FetchError{Source: src, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}

// Parse decodes a JSON array of records. Numbers are kept as json.Number.
func Parse(src string, body []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &card.ParseError{Source: src, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &card.ParseError{Source: src, Err: fmt.Errorf("trailing data after document")}
	}

	records, ok := doc.([]any)
	if !ok {
		return nil, &card.ParseError{Source: src}
	}
	return records, nil
}
