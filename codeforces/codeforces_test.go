package codeforces

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpbridge/cpbridge/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(upstream.NewClient()).WithBaseURL(srv.URL)
}

func TestUserInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user.info", r.URL.Path)
		assert.Equal(t, "tourist;Petr", r.URL.Query().Get("handles"))
		fmt.Fprint(w, `{"status":"OK","result":[
			{"handle":"tourist","rating":3800,"maxRating":4000,"rank":"legendary grandmaster","registrationTimeSeconds":1200000000},
			{"handle":"Petr","rating":3500,"maxRating":3700,"rank":"legendary grandmaster","registrationTimeSeconds":1100000000}
		]}`)
	})

	users, err := c.UserInfo(context.Background(), []string{"tourist", "Petr"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "tourist", users[0].Handle)
	assert.Equal(t, 3800, users[0].Rating)
}

func TestUserInfo_EnvelopeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		// HTTP 200 with a failed envelope is still an API error.
		fmt.Fprint(w, `{"status":"FAILED","comment":"handles: User with handle ghost not found"}`)
	})

	_, err := c.UserInfo(context.Background(), []string{"ghost"})
	require.Error(t, err)
	ae, ok := upstream.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "codeforces: handles: User with handle ghost not found", ae.Message)
}

func TestUserInfo_EnvelopeFailureWithoutComment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"FAILED"}`)
	})

	_, err := c.UserInfo(context.Background(), []string{"x"})
	ae, ok := upstream.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "codeforces: unknown error", ae.Message)
}

func TestUserStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user.status", r.URL.Path)
		assert.Equal(t, "tourist", r.URL.Query().Get("handle"))
		assert.Equal(t, "1", r.URL.Query().Get("from"))
		assert.Equal(t, "100", r.URL.Query().Get("count"))
		fmt.Fprint(w, `{"status":"OK","result":[
			{"creationTimeSeconds":1700000000,"verdict":"OK","problem":{"contestId":1850,"index":"A","name":"To My Critics","rating":800}},
			{"creationTimeSeconds":1699999999,"verdict":"WRONG_ANSWER","problem":{"contestId":1850,"index":"B","name":"Ten Words of Wisdom","rating":800}}
		]}`)
	})

	subs, err := c.UserStatus(context.Background(), "tourist", 100)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.True(t, subs[0].Accepted())
	assert.False(t, subs[1].Accepted())
	assert.Equal(t, "1850-A", subs[0].Problem.Key())
}

func TestRatingChanges(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user.rating", r.URL.Path)
		fmt.Fprint(w, `{"status":"OK","result":[
			{"contestId":1,"contestName":"Round 1","rank":10,"oldRating":1500,"newRating":1600,"ratingUpdateTimeSeconds":1600000000}
		]}`)
	})

	changes, err := c.RatingChanges(context.Background(), "someone")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, 100, changes[0].Delta())
	assert.Equal(t, "https://codeforces.com/contest/1", changes[0].ContestURL())
}

func TestProblemset(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/problemset.problems", r.URL.Path)
		assert.Equal(t, "dp;graphs", r.URL.Query().Get("tags"))
		fmt.Fprint(w, `{"status":"OK","result":{"problems":[
			{"contestId":2,"index":"C","name":"Commentator problem","rating":2300,"tags":["dp"]}
		]}}`)
	})

	problems, err := c.Problemset(context.Background(), []string{"dp", "graphs"})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "https://codeforces.com/problemset/problem/2/C", problems[0].URL())
}

func TestProfileURL_Escaping(t *testing.T) {
	assert.Equal(t, "https://codeforces.com/profile/a%2Fb", ProfileURL("a/b"))
}
