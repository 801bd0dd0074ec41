package cptools

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cpbridge/cpbridge"
	"github.com/cpbridge/cpbridge/codeforces"
	"github.com/cpbridge/cpbridge/render"
	"github.com/cpbridge/cpbridge/upstream"
)

// Submission fetch depths. Listing tools need only a shallow window; dedup and
// distribution tools go deep so old solves still count.
const (
	fetchRecent  = 100
	fetchProfile = 1000
	fetchDeep    = 5000

	fetchCompare = 50
)

const defaultRatingWindow = 199

var userStatsDesc = cpbridge.Descriptor{
	Name:        "get_codeforces_user_stats",
	Description: "Get rating, rank and profile info for one or more Codeforces users. With multiple handles the result is sorted as a leaderboard.",
	Params: []cpbridge.Param{
		{Name: "handles", Type: cpbridge.TypeStringList, Description: "Codeforces handles to look up", IdentityDefault: true},
	},
}

func (s *Service) userStats(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handles, err := requireHandles(args)
	if err != nil {
		return nil, err
	}
	users, err := s.CF.UserInfo(ctx, handles)
	if err != nil {
		if isNotFound(err) {
			return cpbridge.Text(fmt.Sprintf("User not found on Codeforces: %s", strings.Join(handles, ", "))), nil
		}
		return nil, safeErr(err, "fetch user info")
	}
	if len(users) > 1 {
		sort.SliceStable(users, func(i, j int) bool { return users[i].Rating > users[j].Rating })
	}
	return cpbridge.Text(render.UserStats(users)), nil
}

var recommendDesc = cpbridge.Descriptor{
	Name:        "recommend_problems",
	Description: "Recommend unsolved Codeforces problems in a rating window. Without bounds the window is the user's current rating plus 199.",
	Params: []cpbridge.Param{
		{Name: "handle", Type: cpbridge.TypeString, Description: "Codeforces handle to recommend for", IdentityDefault: true},
		{Name: "min_rating", Type: cpbridge.TypeInteger, Description: "Lower bound of the problem rating window", Min: intp(800), Max: intp(3500)},
		{Name: "max_rating", Type: cpbridge.TypeInteger, Description: "Upper bound of the problem rating window", Min: intp(800), Max: intp(3500)},
		{Name: "count", Type: cpbridge.TypeInteger, Description: "How many problems to recommend", Default: 5, Min: intp(1), Max: intp(30)},
		{Name: "tags", Type: cpbridge.TypeStringList, Description: "Restrict recommendations to these problem tags"},
	},
}

func intp(v int) *int { return &v }

func (s *Service) recommendProblems(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handle, err := requireHandle(args)
	if err != nil {
		return nil, err
	}
	minRating, maxRating := args.Int("min_rating"), args.Int("max_rating")
	if minRating == 0 || maxRating == 0 {
		rating := 1200
		users, err := s.CF.UserInfo(ctx, []string{handle})
		if err != nil {
			if !isNotFound(err) {
				return nil, safeErr(err, "fetch user rating")
			}
		} else if len(users) > 0 && users[0].Rating > 0 {
			rating = users[0].Rating
		}
		if minRating == 0 {
			minRating = rating
		}
		if maxRating == 0 {
			maxRating = minRating + defaultRatingWindow
		}
	}
	if minRating > maxRating {
		return nil, cpbridge.NewArgumentError("min_rating %d is above max_rating %d", minRating, maxRating)
	}

	subs, err := s.CF.UserStatus(ctx, handle, fetchProfile)
	if err != nil && !isNotFound(err) {
		return nil, safeErr(err, "fetch submission history")
	}
	solved := solvedKeys(subs)

	problems, err := s.CF.Problemset(ctx, args.StringList("tags"))
	if err != nil {
		return nil, safeErr(err, "fetch problemset")
	}

	var candidates []codeforces.Problem
	for _, p := range problems {
		if p.Rating == 0 || p.Rating < minRating || p.Rating > maxRating {
			continue
		}
		if _, ok := solved[p.Key()]; ok {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return cpbridge.Text(fmt.Sprintf("No unsolved problems found for %s in the %d-%d window.", handle, minRating, maxRating)), nil
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if count := args.Int("count"); len(candidates) > count {
		candidates = candidates[:count]
	}
	return cpbridge.Text(render.Recommendations(handle, minRating, maxRating, candidates)), nil
}

var solvedDesc = cpbridge.Descriptor{
	Name:        "get_solved_problems",
	Description: "List a user's most recently solved Codeforces problems, newest first.",
	Params: []cpbridge.Param{
		{Name: "handle", Type: cpbridge.TypeString, Description: "Codeforces handle", IdentityDefault: true},
		{Name: "count", Type: cpbridge.TypeInteger, Description: "How many solved problems to list", Default: 10, Min: intp(1), Max: intp(50)},
	},
}

func (s *Service) solvedProblems(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handle, err := requireHandle(args)
	if err != nil {
		return nil, err
	}
	subs, err := s.CF.UserStatus(ctx, handle, fetchRecent)
	if err != nil {
		if isNotFound(err) {
			return cpbridge.Text(fmt.Sprintf("User not found on Codeforces: %s", handle)), nil
		}
		return nil, safeErr(err, "fetch submission history")
	}
	solved := solvedSubmissions(subs)
	if len(solved) == 0 {
		return cpbridge.Text(fmt.Sprintf("No solved problems found in the recent submissions of %s.", handle)), nil
	}
	if count := args.Int("count"); len(solved) > count {
		solved = solved[:count]
	}
	return cpbridge.Text(render.SolvedList(handle, solved)), nil
}

var ratingChangesDesc = cpbridge.Descriptor{
	Name:        "get_rating_changes",
	Description: "Show a user's most recent Codeforces contest results with rating deltas.",
	Params: []cpbridge.Param{
		{Name: "handle", Type: cpbridge.TypeString, Description: "Codeforces handle", IdentityDefault: true},
		{Name: "count", Type: cpbridge.TypeInteger, Description: "How many recent contests to show", Default: 5, Min: intp(1), Max: intp(30)},
	},
}

func (s *Service) ratingChanges(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handle, err := requireHandle(args)
	if err != nil {
		return nil, err
	}
	changes, err := s.CF.RatingChanges(ctx, handle)
	if err != nil {
		if isNotFound(err) {
			return cpbridge.Text(fmt.Sprintf("User not found on Codeforces: %s", handle)), nil
		}
		return nil, safeErr(err, "fetch rating changes")
	}
	if len(changes) == 0 {
		return cpbridge.Text(fmt.Sprintf("%s has not participated in any rated contest yet.", handle)), nil
	}
	if count := args.Int("count"); len(changes) > count {
		changes = changes[len(changes)-count:]
	}
	// API order is oldest first; display newest first.
	for i, j := 0, len(changes)-1; i < j; i, j = i+1, j-1 {
		changes[i], changes[j] = changes[j], changes[i]
	}
	return cpbridge.Text(render.RatingChanges(handle, changes)), nil
}

var histogramDesc = cpbridge.Descriptor{
	Name:        "get_solved_rating_histogram",
	Description: "Show an ASCII histogram of a user's solved Codeforces problems bucketed by rating.",
	Params: []cpbridge.Param{
		{Name: "handle", Type: cpbridge.TypeString, Description: "Codeforces handle", IdentityDefault: true},
		{Name: "bin_size", Type: cpbridge.TypeInteger, Description: "Rating bucket width", Default: 100, Min: intp(100), Max: intp(400)},
	},
}

func (s *Service) ratingHistogram(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handle, err := requireHandle(args)
	if err != nil {
		return nil, err
	}
	subs, err := s.CF.UserStatus(ctx, handle, fetchDeep)
	if err != nil {
		if isNotFound(err) {
			return cpbridge.Text(fmt.Sprintf("User not found on Codeforces: %s", handle)), nil
		}
		return nil, safeErr(err, "fetch submission history")
	}
	binSize := args.Int("bin_size")
	bins := ratingBins(subs, binSize)
	if len(bins) == 0 {
		return cpbridge.Text(fmt.Sprintf("%s has no solved problems with a rating.", handle)), nil
	}
	return cpbridge.Text(render.Histogram(handle, binSize, bins)), nil
}

var compareDesc = cpbridge.Descriptor{
	Name:        "compare_codeforces_users",
	Description: "Compare multiple Codeforces users by rating, contest activity and recent solves. Unknown handles are reported, not fatal.",
	Params: []cpbridge.Param{
		{Name: "handles", Type: cpbridge.TypeStringList, Description: "Two or more Codeforces handles to compare", Required: true},
	},
}

func (s *Service) compareUsers(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handles := args.StringList("handles")
	if len(handles) < 2 {
		return nil, cpbridge.NewArgumentError("at least two handles are required for a comparison")
	}

	rows := make([]render.ComparisonRow, len(handles))
	var wg sync.WaitGroup
	for i, handle := range handles {
		wg.Add(1)
		go func(i int, handle string) {
			defer wg.Done()
			rows[i] = s.compareRow(ctx, handle)
		}(i, handle)
	}
	wg.Wait()

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Missing != rows[j].Missing {
			return !rows[i].Missing
		}
		return rows[i].Rating > rows[j].Rating
	})
	return cpbridge.Text(render.Comparison(rows)), nil
}

// compareRow probes a single handle. The profile is mandatory; enrichment
// failures degrade the row instead of failing the comparison.
func (s *Service) compareRow(ctx context.Context, handle string) render.ComparisonRow {
	users, err := s.CF.UserInfo(ctx, []string{handle})
	if err != nil || len(users) == 0 {
		return render.ComparisonRow{Handle: handle, Missing: true}
	}
	u := users[0]
	row := render.ComparisonRow{
		Handle:      u.Handle,
		Rank:        u.Rank,
		Rating:      u.Rating,
		MaxRating:   u.MaxRating,
		MemberSince: time.Unix(u.RegistrationTimeSeconds, 0),
	}

	var (
		changes []codeforces.RatingChange
		subs    []codeforces.Submission
		cErr    error
		sErr    error
		wg      sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		changes, cErr = s.CF.RatingChanges(ctx, handle)
	}()
	go func() {
		defer wg.Done()
		subs, sErr = s.CF.UserStatus(ctx, handle, fetchCompare)
	}()
	wg.Wait()
	if cErr != nil || sErr != nil {
		row.Degraded = true
		return row
	}
	row.Contests = len(changes)
	for _, sub := range subs {
		if sub.Accepted() {
			row.RecentAccepted++
		}
	}
	return row
}

// solvedSubmissions filters accepted submissions and drops repeat solves of
// the same problem, keeping the first (newest) occurrence.
func solvedSubmissions(subs []codeforces.Submission) []codeforces.Submission {
	seen := make(map[string]struct{})
	var solved []codeforces.Submission
	for _, sub := range subs {
		if !sub.Accepted() {
			continue
		}
		key := sub.Problem.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		solved = append(solved, sub)
	}
	return solved
}

func solvedKeys(subs []codeforces.Submission) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, sub := range subs {
		if sub.Accepted() {
			keys[sub.Problem.Key()] = struct{}{}
		}
	}
	return keys
}

// ratingBins buckets distinct solved problems by rating. Unrated problems are
// excluded; the bucket is the rating floored to a binSize multiple.
func ratingBins(subs []codeforces.Submission, binSize int) map[int]int {
	bins := make(map[int]int)
	for _, sub := range solvedSubmissions(subs) {
		if sub.Problem.Rating == 0 {
			continue
		}
		bins[sub.Problem.Rating/binSize*binSize]++
	}
	return bins
}

// performance estimates the rating a contest result was "worth": the old
// rating plus four times the delta.
func performance(oldRating, newRating int) int {
	return oldRating + 4*(newRating-oldRating)
}

// isNotFound detects the Codeforces rejection for unknown handles so tools can
// answer with a friendly message instead of an error.
func isNotFound(err error) bool {
	ae, ok := upstream.AsAPIError(err)
	return ok && strings.Contains(strings.ToLower(ae.Message), "not found")
}
