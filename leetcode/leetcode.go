// Package leetcode fetches the daily challenge through LeetCode's GraphQL
// endpoint. A 200 response carrying a GraphQL errors array is converted to an
// upstream.APIError with the upstream's own messages.
package leetcode

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cpbridge/cpbridge/upstream"
)

const defaultBaseURL = "https://leetcode.com/graphql"

const dailyQuery = `
query questionOfToday {
    activeDailyCodingChallengeQuestion {
        date
        link
        question {
            difficulty
            title
            titleSlug
            content
            topicTags { name }
        }
    }
}`

// TopicTag is a topic label attached to a question.
type TopicTag struct {
	Name string `json:"name"`
}

// Question is the problem body of a daily challenge.
type Question struct {
	Difficulty string     `json:"difficulty"`
	Title      string     `json:"title"`
	TitleSlug  string     `json:"titleSlug"`
	Content    string     `json:"content"` // raw HTML
	TopicTags  []TopicTag `json:"topicTags"`
}

// Daily is today's challenge with its site-relative link.
type Daily struct {
	Date     string   `json:"date"`
	Link     string   `json:"link"`
	Question Question `json:"question"`
}

// URL returns the absolute problem page URL.
func (d Daily) URL() string {
	return "https://leetcode.com" + d.Link
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// Client issues GraphQL queries against LeetCode.
type Client struct {
	base string
	api  *upstream.Client
}

// New creates a Client over the shared upstream client.
func New(api *upstream.Client) *Client {
	return &Client{base: defaultBaseURL, api: api}
}

// WithBaseURL overrides the GraphQL endpoint (tests).
func (c *Client) WithBaseURL(base string) *Client {
	c.base = base
	return c
}

func (c *Client) send(ctx context.Context, query string, variables map[string]any, out any) error {
	var resp gqlResponse
	req := gqlRequest{Query: query, Variables: variables}
	if err := c.api.PostJSON(ctx, c.base, req, nil, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return upstream.NewAPIError(400, "leetcode: %s", strings.Join(msgs, "; "))
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return errors.Wrap(err, "decode graphql data")
	}
	return nil
}

type dailyData struct {
	ActiveDailyCodingChallengeQuestion *Daily `json:"activeDailyCodingChallengeQuestion"`
}

// DailyProblem fetches today's challenge. Returns (nil, nil) when the upstream
// reports no active challenge.
func (c *Client) DailyProblem(ctx context.Context) (*Daily, error) {
	var data dailyData
	if err := c.send(ctx, dailyQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.ActiveDailyCodingChallengeQuestion, nil
}
