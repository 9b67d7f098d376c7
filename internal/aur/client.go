// Package aur implements a client for the AUR RPC interface (v5).
package aur

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

var (
	// ErrConnection indicates the AUR endpoint returned a non-success
	// transport status or could not be reached
	ErrConnection = errors.New("could not connect to the AUR")
)

// infoChunkSize bounds the number of arg[] parameters per info request,
// keeping the query string within the endpoint's length limits.
const infoChunkSize = 200

// PackageInfo is one package metadata record from the RPC interface.
// The dependency arrays are omitted by the server when a package has
// none, which unmarshals to empty lists here.
type PackageInfo struct {
	ID           int      `json:"ID"`
	Name         string   `json:"Name"`
	PackageBase  string   `json:"PackageBase"`
	Version      string   `json:"Version"`
	Description  string   `json:"Description"`
	Maintainer   string   `json:"Maintainer"`
	Popularity   float64  `json:"Popularity"`
	Depends      []string `json:"Depends"`
	MakeDepends  []string `json:"MakeDepends"`
	OptDepends   []string `json:"OptDepends"`
	CheckDepends []string `json:"CheckDepends"`
}

// rpcResponse is the envelope every RPC reply arrives in
type rpcResponse struct {
	ResultCount int           `json:"resultcount"`
	Results     []PackageInfo `json:"results"`
}

// Client handles communication with the AUR RPC endpoint
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a new AUR client for the given base URL
// (e.g. https://aur.archlinux.org).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://aur.archlinux.org"
	}
	return &Client{
		BaseURL:   baseURL,
		UserAgent: "aurmate/1.0",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search queries the RPC search endpoint for term. An empty result set
// is not an error; callers decide whether that is fatal. Results are
// ordered by descending popularity.
func (c *Client) Search(term string) ([]PackageInfo, error) {
	params := url.Values{}
	params.Set("v", "5")
	params.Set("type", "search")
	params.Set("arg", term)

	resp, err := c.get(params)
	if err != nil {
		return nil, err
	}

	results := resp.Results
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Popularity > results[j].Popularity
	})

	return results, nil
}

// Info batch-fetches metadata for the given names, chunking requests to
// respect the endpoint's query-length limits. Result order is not
// guaranteed to match the input, and names unknown to the AUR are
// simply absent from the result.
func (c *Client) Info(names []string) ([]PackageInfo, error) {
	var all []PackageInfo

	for start := 0; start < len(names); start += infoChunkSize {
		end := start + infoChunkSize
		if end > len(names) {
			end = len(names)
		}

		params := url.Values{}
		params.Set("v", "5")
		params.Set("type", "info")
		for _, name := range names[start:end] {
			params.Add("arg[]", name)
		}

		resp, err := c.get(params)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)
	}

	return all, nil
}

// get issues one RPC request and decodes the response envelope
func (c *Client) get(params url.Values) (*rpcResponse, error) {
	reqURL := fmt.Sprintf("%s/rpc?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrConnection, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrConnection, err)
	}

	var rpc rpcResponse
	if err := json.Unmarshal(body, &rpc); err != nil {
		return nil, fmt.Errorf("failed to parse AUR response: %w", err)
	}

	return &rpc, nil
}
