// Package codeforces is a typed client for the Codeforces REST API.
//
// Codeforces wraps every payload in an envelope with a status flag; a 200
// response whose status is not "OK" is still a failure and is converted to an
// upstream.APIError carrying the payload's own comment.
package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cpbridge/cpbridge/upstream"
)

const (
	defaultBaseURL = "https://codeforces.com/api"

	// VerdictAccepted is the only verdict that counts a problem as solved.
	VerdictAccepted = "OK"
)

// User is a Codeforces profile as returned by user.info.
type User struct {
	Handle                  string `json:"handle"`
	Rating                  int    `json:"rating"`
	MaxRating               int    `json:"maxRating"`
	Rank                    string `json:"rank"`
	RegistrationTimeSeconds int64  `json:"registrationTimeSeconds"`
}

// Problem identifies one problem of the problemset. Rating is zero when the
// problem is unrated.
type Problem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}

// Key is the identity of a problem across submissions: (contest, index).
func (p Problem) Key() string {
	return strconv.Itoa(p.ContestID) + "-" + p.Index
}

// URL returns the public problem page.
func (p Problem) URL() string {
	return fmt.Sprintf("https://codeforces.com/problemset/problem/%d/%s", p.ContestID, p.Index)
}

// Submission is one entry of a user's submission history.
type Submission struct {
	CreationTimeSeconds int64   `json:"creationTimeSeconds"`
	Verdict             string  `json:"verdict"`
	Problem             Problem `json:"problem"`
	ProgrammingLanguage string  `json:"programmingLanguage"`
}

// Accepted reports whether the submission solved its problem.
func (s Submission) Accepted() bool {
	return s.Verdict == VerdictAccepted
}

// RatingChange is one contest participation with its rating delta.
type RatingChange struct {
	ContestID               int    `json:"contestId"`
	ContestName             string `json:"contestName"`
	Rank                    int    `json:"rank"`
	OldRating               int    `json:"oldRating"`
	NewRating               int    `json:"newRating"`
	RatingUpdateTimeSeconds int64  `json:"ratingUpdateTimeSeconds"`
}

// Delta returns the rating change of the contest.
func (rc RatingChange) Delta() int {
	return rc.NewRating - rc.OldRating
}

// ContestURL returns the public contest page.
func (rc RatingChange) ContestURL() string {
	return fmt.Sprintf("https://codeforces.com/contest/%d", rc.ContestID)
}

// ProfileURL returns the public profile page for a handle.
func ProfileURL(handle string) string {
	return "https://codeforces.com/profile/" + url.PathEscape(handle)
}

type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

// Client wraps the Codeforces API endpoints used by the tool handlers.
type Client struct {
	base string
	api  *upstream.Client
}

// New creates a Client over the shared upstream client.
func New(api *upstream.Client) *Client {
	return &Client{base: defaultBaseURL, api: api}
}

// WithBaseURL overrides the API base URL (tests).
func (c *Client) WithBaseURL(base string) *Client {
	c.base = strings.TrimSuffix(base, "/")
	return c
}

// query issues one API call and unwraps the envelope, applying the two-tier
// error check: transport first, then the payload status flag.
func (c *Client) query(ctx context.Context, endpoint string, params url.Values, out any) error {
	var env envelope
	if err := c.api.GetJSON(ctx, c.base+"/"+endpoint, params, nil, &env); err != nil {
		return err
	}
	if env.Status != "OK" {
		comment := env.Comment
		if comment == "" {
			comment = "unknown error"
		}
		return upstream.NewAPIError(400, "codeforces: %s", comment)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return errors.Wrapf(err, "decode %s result", endpoint)
	}
	return nil
}

// UserInfo fetches profiles for the given handles in one call. Codeforces
// rejects the whole request when any handle is unknown; callers that need
// per-handle tolerance probe handles individually.
func (c *Client) UserInfo(ctx context.Context, handles []string) ([]User, error) {
	params := url.Values{"handles": {strings.Join(handles, ";")}}
	var users []User
	if err := c.query(ctx, "user.info", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserStatus fetches up to count recent submissions of a handle.
func (c *Client) UserStatus(ctx context.Context, handle string, count int) ([]Submission, error) {
	params := url.Values{
		"handle": {handle},
		"from":   {"1"},
		"count":  {strconv.Itoa(count)},
	}
	var subs []Submission
	if err := c.query(ctx, "user.status", params, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// RatingChanges fetches the full contest history of a handle, oldest first.
func (c *Client) RatingChanges(ctx context.Context, handle string) ([]RatingChange, error) {
	params := url.Values{"handle": {handle}}
	var changes []RatingChange
	if err := c.query(ctx, "user.rating", params, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

type problemsetResult struct {
	Problems []Problem `json:"problems"`
}

// Problemset fetches the problem archive, optionally filtered by tags.
func (c *Client) Problemset(ctx context.Context, tags []string) ([]Problem, error) {
	params := url.Values{}
	if len(tags) > 0 {
		params.Set("tags", strings.Join(tags, ";"))
	}
	var res problemsetResult
	if err := c.query(ctx, "problemset.problems", params, &res); err != nil {
		return nil, err
	}
	return res.Problems, nil
}
