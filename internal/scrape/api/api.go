package api

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"tenderhunt-engine/internal/scrape/extract"
	"tenderhunt-engine/internal/scrape/types"
)

// Strategy hits a known JSON endpoint directly. GET first; some portals only
// answer POST, so an empty GET is followed by a POST with an empty body.
type Strategy struct {
	client *resty.Client
}

func New(client *resty.Client) *Strategy {
	return &Strategy{client: client}
}

func (s *Strategy) Name() string { return "api" }

func (s *Strategy) Attempt(ctx context.Context, url string) ([]types.RawTender, error) {
	tenders, err := s.fetch(ctx, url, false)
	if err != nil {
		return nil, err
	}
	if len(tenders) > 0 {
		return tenders, nil
	}
	return s.fetch(ctx, url, true)
}

func (s *Strategy) fetch(ctx context.Context, url string, post bool) ([]types.RawTender, error) {
	var data any
	req := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&data)

	var (
		res *resty.Response
		err error
	)
	if post {
		res, err = req.SetBody(map[string]any{}).Post(url)
	} else {
		res, err = req.Get(url)
	}
	if err != nil {
		return nil, fmt.Errorf("api fetch %s: %w", url, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("api fetch %s: status %d", url, res.StatusCode())
	}
	return extract.FromAPIPayload(data), nil
}
