// Package render formats aggregated platform data for display: deterministic
// text summaries, chart PNGs, and profile-card PNGs. It is purely
// presentational; it never issues network calls and never inspects image
// bytes it did not produce.
package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cpbridge/cpbridge/clist"
	"github.com/cpbridge/cpbridge/codeforces"
	"github.com/cpbridge/cpbridge/leetcode"
)

const (
	monthYear = "Jan 2006"
	dateOnly  = "2006-01-02"

	histogramBarWidth = 40
)

// UserStats formats one or more profiles, already sorted by the caller. With
// more than one user the heading reads as a leaderboard.
func UserStats(users []codeforces.User) string {
	var b strings.Builder
	if len(users) > 1 {
		b.WriteString("**Codeforces User Leaderboard**\n\n")
	} else {
		b.WriteString("**Codeforces User Stats**\n\n")
	}
	for _, u := range users {
		since := time.Unix(u.RegistrationTimeSeconds, 0).UTC().Format(monthYear)
		fmt.Fprintf(&b, "**%s %s**\n", rankOrUnrated(u.Rank), u.Handle)
		fmt.Fprintf(&b, "- Rating: **%d** (Max: %d)\n", u.Rating, u.MaxRating)
		fmt.Fprintf(&b, "- Member Since: %s\n", since)
		fmt.Fprintf(&b, "- Profile: %s\n", codeforces.ProfileURL(u.Handle))
		b.WriteString("---\n")
	}
	return strings.TrimSpace(b.String())
}

// Recommendations formats a recommended problem list for a rating window.
func Recommendations(handle string, minRating, maxRating int, problems []codeforces.Problem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Recommended Problems for %s (%d-%d):**\n\n", handle, minRating, maxRating)
	for i, p := range problems {
		fmt.Fprintf(&b, "%d. [%s](%s) - Rating: %d\n", i+1, p.Name, p.URL(), p.Rating)
	}
	return strings.TrimSpace(b.String())
}

// SolvedList formats recently solved problems, newest first per the caller's
// ordering.
func SolvedList(handle string, subs []codeforces.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Recently Solved by %s**\n\n", handle)
	for i, s := range subs {
		solvedOn := time.Unix(s.CreationTimeSeconds, 0).UTC().Format(dateOnly)
		rating := "N/A"
		if s.Problem.Rating > 0 {
			rating = fmt.Sprintf("%d", s.Problem.Rating)
		}
		fmt.Fprintf(&b, "%d. [%s](%s) - **%s** (Solved on %s)\n", i+1, s.Problem.Name, s.Problem.URL(), rating, solvedOn)
	}
	return strings.TrimSpace(b.String())
}

// RatingChanges formats recent contest results, newest first per the caller's
// ordering.
func RatingChanges(handle string, changes []codeforces.RatingChange) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Recent Rating Changes for %s**\n\n", handle)
	for _, c := range changes {
		fmt.Fprintf(&b, "- [%s](%s)\n", c.ContestName, c.ContestURL())
		fmt.Fprintf(&b, "  - Rank: %d, %d -> **%d** (%+d)\n", c.Rank, c.OldRating, c.NewRating, c.Delta())
	}
	return strings.TrimSpace(b.String())
}

// Histogram renders an ASCII histogram of solved-problem counts per rating
// bin. Bars scale linearly against the largest bin.
func Histogram(handle string, binSize int, bins map[int]int) string {
	keys := make([]int, 0, len(bins))
	maxCount := 0
	for k, v := range bins {
		keys = append(keys, k)
		if v > maxCount {
			maxCount = v
		}
	}
	sort.Ints(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "**Solved Problems Histogram for %s**\n\n```\n", handle)
	for _, k := range keys {
		count := bins[k]
		barLen := 0
		if maxCount > 0 {
			barLen = count * histogramBarWidth / maxCount
		}
		bar := strings.Repeat("█", barLen)
		fmt.Fprintf(&b, "%4d-%-4d | %-40s (%d)\n", k, k+binSize-1, bar, count)
	}
	b.WriteString("```")
	return b.String()
}

// ComparisonRow is one user's entry of a multi-user comparison. Missing marks
// a handle the platform does not know; Degraded marks a row whose enrichment
// calls failed, leaving only profile-level fields.
type ComparisonRow struct {
	Handle         string
	Rank           string
	Rating         int
	MaxRating      int
	Contests       int
	RecentAccepted int
	MemberSince    time.Time
	Missing        bool
	Degraded       bool
}

var medals = []string{"1st", "2nd", "3rd"}

// Comparison formats comparison rows in the caller's order (rating
// descending), with missing and degraded entries surfaced explicitly.
func Comparison(rows []ComparisonRow) string {
	var b strings.Builder
	b.WriteString("**Competitive Programming Comparison**\n\n")

	position := 0
	var present []ComparisonRow
	for _, row := range rows {
		if row.Missing {
			fmt.Fprintf(&b, "- **%s**: not found on Codeforces\n\n", row.Handle)
			continue
		}
		present = append(present, row)
		position++
		prefix := fmt.Sprintf("%d.", position)
		if position <= len(medals) {
			prefix = medals[position-1]
		}
		fmt.Fprintf(&b, "%s **%s %s**\n", prefix, rankOrUnrated(row.Rank), row.Handle)
		fmt.Fprintf(&b, "   - Current Rating: **%d**\n", row.Rating)
		fmt.Fprintf(&b, "   - Peak Rating: **%d**\n", row.MaxRating)
		if row.Degraded {
			b.WriteString("   - Contests Participated: N/A\n")
			b.WriteString("   - Recent Accepted: N/A\n")
		} else {
			fmt.Fprintf(&b, "   - Contests Participated: %d\n", row.Contests)
			fmt.Fprintf(&b, "   - Recent Accepted: %d\n", row.RecentAccepted)
		}
		fmt.Fprintf(&b, "   - Member Since: %s\n", row.MemberSince.UTC().Format(monthYear))
		if row.Degraded {
			b.WriteString("   - Limited data due to API issues\n")
		}
		b.WriteString("\n")
	}

	if len(present) > 0 {
		winner := present[0]
		fmt.Fprintf(&b, "**Final Verdict**: %s leads with %d rating.\n\n", winner.Handle, winner.Rating)
		fmt.Fprintf(&b, "**Key Insights**:\n")
		fmt.Fprintf(&b, "- Rating spread: %d points\n", winner.Rating-present[len(present)-1].Rating)
		mostActive := present[0]
		for _, row := range present[1:] {
			if !row.Degraded && (mostActive.Degraded || row.RecentAccepted > mostActive.RecentAccepted) {
				mostActive = row
			}
		}
		if !mostActive.Degraded {
			fmt.Fprintf(&b, "- Most active solver: %s (%d recent accepted)\n", mostActive.Handle, mostActive.RecentAccepted)
		}
	}
	return strings.TrimSpace(b.String())
}

// DailyProblem formats today's LeetCode challenge with its HTML body reduced
// to plain text.
func DailyProblem(d *leetcode.Daily) string {
	var b strings.Builder
	b.WriteString("**Today's LeetCode Daily Problem**\n\n")
	fmt.Fprintf(&b, "**%s** (%s)\n", d.Question.Title, d.Question.Difficulty)
	fmt.Fprintf(&b, "Solve it here: %s\n\n", d.URL())
	b.WriteString("Problem Description:\n")
	b.WriteString(HTMLToText(d.Question.Content))
	return strings.TrimSpace(b.String())
}

// Contests formats upcoming contests in the aggregator's order.
func Contests(platforms []string, contests []clist.Contest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Upcoming Contests (%s)**\n\n", strings.Join(platforms, ", "))
	for _, c := range contests {
		fmt.Fprintf(&b, "- **%s**\n", c.Event)
		fmt.Fprintf(&b, "  - On: %s\n", c.Resource)
		if start, err := c.StartTime(); err == nil {
			fmt.Fprintf(&b, "  - Starts: %s\n", start.Format("Mon, Jan 2 @ 15:04 MST"))
			if end, err := c.EndTime(); err == nil {
				fmt.Fprintf(&b, "  - Duration: %s\n", end.Sub(start))
			}
		}
		fmt.Fprintf(&b, "  - Link: %s\n", c.Href)
		b.WriteString("---\n")
	}
	return strings.TrimSpace(b.String())
}

func rankOrUnrated(rank string) string {
	if rank == "" {
		return "Unrated"
	}
	return rank
}
