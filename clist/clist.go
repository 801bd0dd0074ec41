// Package clist is a client for the clist.by contest aggregator. Requests are
// API-key authenticated and filtered to upcoming contests on an allow-list of
// platform resources.
package clist

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/cpbridge/cpbridge/upstream"
)

const defaultBaseURL = "https://clist.by/api/v4/contest/"

// contestTimeLayout is the zone-less timestamp format clist returns; values
// are UTC.
const contestTimeLayout = "2006-01-02T15:04:05"

// resources maps the platform names callers use to clist resource identifiers.
var resources = map[string]string{
	"codeforces":   "codeforces.com",
	"leetcode":     "leetcode.com",
	"codechef":     "codechef.com",
	"atcoder":      "atcoder.jp",
	"topcoder":     "topcoder.com",
	"codingninjas": "codingninjas.com/codestudio",
}

// SupportedPlatforms returns the accepted platform names, sorted.
func SupportedPlatforms() []string {
	out := make([]string, 0, len(resources))
	for name := range resources {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Contest is one upcoming contest entry.
type Contest struct {
	Event    string `json:"event"`
	Resource string `json:"resource"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Href     string `json:"href"`
}

// StartTime parses the contest start as UTC.
func (c Contest) StartTime() (time.Time, error) {
	return parseTime(c.Start)
}

// EndTime parses the contest end as UTC.
func (c Contest) EndTime() (time.Time, error) {
	return parseTime(c.End)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSuffix(s, "Z")
	return time.ParseInLocation(contestTimeLayout, s, time.UTC)
}

type listResponse struct {
	Objects []Contest `json:"objects"`
}

// Client queries clist.by for upcoming contests.
type Client struct {
	base   string
	apiKey string
	api    *upstream.Client
	now    func() time.Time
}

// New creates a Client with the given API key over the shared upstream client.
func New(api *upstream.Client, apiKey string) *Client {
	return &Client{base: defaultBaseURL, apiKey: apiKey, api: api, now: time.Now}
}

// WithBaseURL overrides the API base URL (tests).
func (c *Client) WithBaseURL(base string) *Client {
	c.base = base
	return c
}

// WithNow overrides the clock used for the time-lower-bound filter (tests).
func (c *Client) WithNow(now func() time.Time) *Client {
	c.now = now
	return c
}

// Upcoming fetches contests starting after now on the given platforms, ordered
// by start time. Unknown platform names are skipped; when none remain the call
// returns an empty list without touching the network.
func (c *Client) Upcoming(ctx context.Context, platforms []string) ([]Contest, error) {
	var names []string
	for _, p := range platforms {
		if res, ok := resources[strings.ToLower(p)]; ok {
			names = append(names, res)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	params := url.Values{
		"start__gt":    {c.now().UTC().Format(contestTimeLayout)},
		"order_by":     {"start"},
		"resource__in": {strings.Join(names, ",")},
	}
	headers := http.Header{"Authorization": {"ApiKey " + c.apiKey}}
	var resp listResponse
	if err := c.api.GetJSON(ctx, c.base, params, headers, &resp); err != nil {
		return nil, err
	}
	return resp.Objects, nil
}
