package remote

import (
	"context"
	"fmt"
	"net/url"
	"path"

	"resto_dashboard/internal/adapters/csvfile"
	"resto_dashboard/internal/domain"
)

// Source is a review table published at a URL.
type Source struct {
	url string
	cl  *Client
}

func NewSource(rawURL string, cl *Client) (*Source, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("source url %q: must be an absolute http(s) url", rawURL)
	}
	if cl == nil {
		cl = New("", 0)
	}
	return &Source{url: rawURL, cl: cl}, nil
}

func (s *Source) Name() string { return "http:" + s.url }

func (s *Source) Read(ctx context.Context) (domain.RawTable, error) {
	b, err := s.cl.Fetch(ctx, s.url)
	if err != nil {
		return domain.RawTable{}, err
	}
	// the path's extension drives tab detection
	name := s.url
	if u, err := url.Parse(s.url); err == nil {
		name = path.Base(u.Path)
	}
	return csvfile.Parse(b, csvfile.Delimiter(name, b))
}
