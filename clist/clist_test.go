package clist

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpbridge/cpbridge/upstream"
)

func TestSupportedPlatforms(t *testing.T) {
	platforms := SupportedPlatforms()
	assert.Contains(t, platforms, "codeforces")
	assert.Contains(t, platforms, "leetcode")
	assert.IsIncreasing(t, platforms)
}

func TestUpcoming(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var gotQuery, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "2024-06-01T12:00:00", r.URL.Query().Get("start__gt"))
		assert.Equal(t, "start", r.URL.Query().Get("order_by"))
		assert.Equal(t, "codeforces.com,leetcode.com", r.URL.Query().Get("resource__in"))
		fmt.Fprint(w, `{"objects":[
			{"event":"Round 950","resource":"codeforces.com","start":"2024-06-02T14:35:00","end":"2024-06-02T16:35:00","href":"https://codeforces.com/contests/1"},
			{"event":"Weekly 400","resource":"leetcode.com","start":"2024-06-02T02:30:00","end":"2024-06-02T04:00:00","href":"https://leetcode.com/contest/weekly-400"}
		]}`)
	}))
	defer srv.Close()

	c := New(upstream.NewClient(), "key123").
		WithBaseURL(srv.URL).
		WithNow(func() time.Time { return fixed })

	contests, err := c.Upcoming(context.Background(), []string{"Codeforces", "leetcode", "unknownjudge"})
	require.NoError(t, err)
	require.Len(t, contests, 2)
	assert.Equal(t, "ApiKey key123", gotAuth)
	assert.NotEmpty(t, gotQuery)

	start, err := contests[0].StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 2, 14, 35, 0, 0, time.UTC), start)
	end, err := contests[0].EndTime()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, end.Sub(start))
}

func TestUpcoming_NoKnownPlatforms(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(upstream.NewClient(), "key").WithBaseURL(srv.URL)
	contests, err := c.Upcoming(context.Background(), []string{"usaco", "projecteuler"})
	require.NoError(t, err)
	assert.Nil(t, contests)
	assert.Zero(t, calls, "unknown platforms must not hit the network")
}

func TestParseTime_TrailingZ(t *testing.T) {
	got, err := parseTime("2024-06-02T14:35:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 2, 14, 35, 0, 0, time.UTC), got)
}
