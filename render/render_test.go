package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpbridge/cpbridge/clist"
	"github.com/cpbridge/cpbridge/codeforces"
	"github.com/cpbridge/cpbridge/leetcode"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestUserStats(t *testing.T) {
	users := []codeforces.User{
		{Handle: "tourist", Rating: 3800, MaxRating: 4000, Rank: "legendary grandmaster", RegistrationTimeSeconds: 1262304000},
	}
	text := UserStats(users)
	assert.Contains(t, text, "**Codeforces User Stats**")
	assert.Contains(t, text, "legendary grandmaster tourist")
	assert.Contains(t, text, "Rating: **3800** (Max: 4000)")
	assert.Contains(t, text, "Member Since: Jan 2010")
	assert.Contains(t, text, "https://codeforces.com/profile/tourist")

	text = UserStats(append(users, codeforces.User{Handle: "second"}))
	assert.Contains(t, text, "**Codeforces User Leaderboard**")
	assert.Contains(t, text, "Unrated second")
}

func TestHistogram(t *testing.T) {
	text := Histogram("alice", 100, map[int]int{800: 2, 900: 4})
	assert.Contains(t, text, "Solved Problems Histogram for alice")
	// The largest bin fills the full bar width, the half-size bin half of it.
	assert.Contains(t, text, " 800-899 ")
	assert.Contains(t, text, " 900-999 ")
	assert.Contains(t, text, "(4)")
	var bar800, bar900 int
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.Contains(line, "800-899"):
			bar800 = strings.Count(line, "█")
		case strings.Contains(line, "900-999"):
			bar900 = strings.Count(line, "█")
		}
	}
	assert.Equal(t, histogramBarWidth, bar900)
	assert.Equal(t, histogramBarWidth/2, bar800)
}

func TestComparison(t *testing.T) {
	rows := []ComparisonRow{
		{Handle: "alice", Rank: "expert", Rating: 1700, MaxRating: 1800, Contests: 30, RecentAccepted: 12, MemberSince: time.Unix(1262304000, 0)},
		{Handle: "bob", Rank: "specialist", Rating: 1500, MaxRating: 1600, MemberSince: time.Unix(1262304000, 0), Degraded: true},
		{Handle: "ghost", Missing: true},
	}
	text := Comparison(rows)
	assert.Contains(t, text, "1st **expert alice**")
	assert.Contains(t, text, "2nd **specialist bob**")
	assert.Contains(t, text, "Contests Participated: N/A")
	assert.Contains(t, text, "Limited data due to API issues")
	assert.Contains(t, text, "**ghost**: not found on Codeforces")
	assert.Contains(t, text, "**Final Verdict**: alice leads with 1700 rating.")
	assert.Contains(t, text, "Rating spread: 200 points")
	assert.Contains(t, text, "Most active solver: alice (12 recent accepted)")
}

func TestComparison_AllMissing(t *testing.T) {
	text := Comparison([]ComparisonRow{{Handle: "a", Missing: true}, {Handle: "b", Missing: true}})
	assert.NotContains(t, text, "Final Verdict")
}

func TestDailyProblem(t *testing.T) {
	d := &leetcode.Daily{
		Link: "/problems/two-sum/",
		Question: leetcode.Question{
			Title:      "Two Sum",
			Difficulty: "Easy",
			Content:    "<p>Given an array, find <code>a+b == target</code>.</p>",
		},
	}
	text := DailyProblem(d)
	assert.Contains(t, text, "**Two Sum** (Easy)")
	assert.Contains(t, text, "https://leetcode.com/problems/two-sum/")
	assert.Contains(t, text, "`a+b == target`")
	assert.NotContains(t, text, "<p>")
}

func TestContests(t *testing.T) {
	contests := []clist.Contest{
		{Event: "Round 950", Resource: "codeforces.com", Start: "2030-06-02T14:35:00", End: "2030-06-02T16:35:00", Href: "https://codeforces.com/contests/1"},
		{Event: "Broken Clock", Resource: "leetcode.com", Start: "not a time", Href: "x"},
	}
	text := Contests([]string{"codeforces", "leetcode"}, contests)
	assert.Contains(t, text, "Upcoming Contests (codeforces, leetcode)")
	assert.Contains(t, text, "Round 950")
	assert.Contains(t, text, "Duration: 2h0m0s")
	// Unparseable times degrade to name and link only.
	assert.Contains(t, text, "Broken Clock")
}

func TestHTMLToText(t *testing.T) {
	in := `<p>Use <strong>fast</strong> IO and <em>think</em>.</p>
<pre>
n = input()
</pre>
<p>Print <code>n*2</code>.</p>


<p>Done &amp; dusted &lt;3</p>`
	out := HTMLToText(in)
	assert.Contains(t, out, "*fast*")
	assert.Contains(t, out, "_think_")
	assert.Contains(t, out, "```\nn = input()\n```")
	assert.Contains(t, out, "`n*2`")
	assert.Contains(t, out, "Done & dusted <3")
	assert.NotContains(t, out, "<p>")
	assert.NotContains(t, out, "\n\n\n")
}

func TestRatingGraphPNG(t *testing.T) {
	now := time.Now()
	series := []RatingSeries{
		{Handle: "alice", Points: []RatingPoint{
			{Time: now.Add(-48 * time.Hour), Rating: 1400},
			{Time: now, Rating: 1500},
		}},
		{Handle: "short", Points: []RatingPoint{{Time: now, Rating: 1200}}},
	}
	png, err := RatingGraphPNG(series)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])

	_, err = RatingGraphPNG([]RatingSeries{{Handle: "short", Points: series[1].Points}})
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestPerformanceGraphPNG(t *testing.T) {
	now := time.Now()
	points := []RatingPoint{
		{Time: now.Add(-24 * time.Hour), Rating: 1700},
		{Time: now, Rating: 1900},
	}
	png, err := PerformanceGraphPNG("alice", points)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])

	_, err = PerformanceGraphPNG("alice", points[:1])
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestDistributionPNG(t *testing.T) {
	png, err := DistributionPNG("alice", 100, map[int]int{800: 3, 900: 5, 1200: 1})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])

	_, err = DistributionPNG("alice", 100, nil)
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestVerdictPiePNG(t *testing.T) {
	png, err := VerdictPiePNG("alice", map[string]int{"OK": 40, "WRONG_ANSWER": 25, "TIME_LIMIT_EXCEEDED": 5})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])

	_, err = VerdictPiePNG("alice", nil)
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestProfileCardPNG(t *testing.T) {
	data := ProfileData{
		Handle:      "alice",
		Rank:        "expert",
		Rating:      1700,
		MaxRating:   1800,
		Solved:      250,
		Contests:    40,
		MemberSince: time.Unix(1262304000, 0),
		History:     []int{1400, 1500, 1450, 1700},
	}
	for _, style := range CardStyles {
		png, err := ProfileCardPNG(data, style, true)
		require.NoError(t, err, "style %s", style)
		assert.Equal(t, pngMagic, png[:4])
	}

	// Unknown styles fall back instead of failing.
	png, err := ProfileCardPNG(data, "vaporwave", false)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestAchievementCardPNG(t *testing.T) {
	png, err := AchievementCardPNG(AchievementData{
		Handle:   "alice",
		Title:    "MILESTONE ACHIEVED!",
		Subtitle: "alice reached 1700+ rating!",
		Lines:    []string{"Current rating: 1734", "Rank: expert"},
	})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestComparisonCardPNG(t *testing.T) {
	card := ProfileData{
		Handle: "alice", Rank: "expert", Rating: 1700, MaxRating: 1800,
		Solved: 100, MemberSince: time.Unix(1262304000, 0), History: []int{1400, 1700},
	}
	second := card
	second.Handle = "bob"

	png, err := ComparisonCardPNG([]ProfileData{card, second}, true)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])

	third := card
	third.Handle = "carol"
	png, err = ComparisonCardPNG([]ProfileData{card, second, third}, false)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])

	_, err = ComparisonCardPNG([]ProfileData{card}, false)
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

