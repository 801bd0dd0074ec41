package cptools

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/cpbridge/cpbridge"
	"github.com/cpbridge/cpbridge/codeforces"
	"github.com/cpbridge/cpbridge/render"
)

var profileCardDesc = cpbridge.Descriptor{
	Name:        "generate_profile_card",
	Description: "Generate a shareable PNG profile card for a Codeforces user.",
	Params: []cpbridge.Param{
		{Name: "handle", Type: cpbridge.TypeString, Description: "Codeforces handle", IdentityDefault: true},
		{Name: "style", Type: cpbridge.TypeString, Description: "Card style", Default: render.StyleModern, Enum: render.CardStyles},
		{Name: "include_graph", Type: cpbridge.TypeBoolean, Description: "Include a mini rating graph on the card", Default: true},
	},
}

func (s *Service) profileCard(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handle, err := requireHandle(args)
	if err != nil {
		return nil, err
	}
	data, missing, err := s.profileData(ctx, handle)
	if err != nil {
		return nil, err
	}
	if missing {
		return cpbridge.Text(fmt.Sprintf("User not found on Codeforces: %s", handle)), nil
	}
	png, err := render.ProfileCardPNG(data, args.String("style"), args.Bool("include_graph"))
	if err != nil {
		return nil, errors.Wrap(err, "render profile card")
	}
	res := cpbridge.Text(fmt.Sprintf("Profile card for %s", data.Handle))
	res.AddImage(render.MIMEPNG, png)
	return res, nil
}

// Achievement kinds accepted by generate_achievement_card.
const (
	achievementRating   = "rating_milestone"
	achievementRank     = "rank_promotion"
	achievementProblems = "problem_milestone"
	achievementContests = "contest_milestone"
)

var achievementCardDesc = cpbridge.Descriptor{
	Name:        "generate_achievement_card",
	Description: "Generate a celebration PNG card for a Codeforces milestone.",
	Params: []cpbridge.Param{
		{Name: "handle", Type: cpbridge.TypeString, Description: "Codeforces handle", IdentityDefault: true},
		{Name: "achievement_type", Type: cpbridge.TypeString, Description: "Kind of milestone to celebrate",
			Default: achievementRating,
			Enum:    []string{achievementRating, achievementRank, achievementProblems, achievementContests}},
		{Name: "milestone_value", Type: cpbridge.TypeInteger, Description: "Milestone value to celebrate, e.g. 1500 for rating or 500 for problems; derived from the profile when omitted"},
	},
}

func (s *Service) achievementCard(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handle, err := requireHandle(args)
	if err != nil {
		return nil, err
	}

	var (
		users   []codeforces.User
		changes []codeforces.RatingChange
		subs    []codeforces.Submission

		infoErr, changesErr, subsErr error
	)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		users, infoErr = s.CF.UserInfo(ctx, []string{handle})
	}()
	go func() {
		defer wg.Done()
		changes, changesErr = s.CF.RatingChanges(ctx, handle)
	}()
	go func() {
		defer wg.Done()
		subs, subsErr = s.CF.UserStatus(ctx, handle, fetchProfile)
	}()
	wg.Wait()

	if infoErr != nil {
		if isNotFound(infoErr) {
			return cpbridge.Text(fmt.Sprintf("User not found on Codeforces: %s", handle)), nil
		}
		return nil, safeErr(infoErr, "fetch user info")
	}
	if len(users) == 0 {
		return cpbridge.Text(fmt.Sprintf("User not found on Codeforces: %s", handle)), nil
	}

	typ := args.String("achievement_type")
	switch typ {
	case achievementProblems:
		if subsErr != nil {
			return nil, safeErr(subsErr, "fetch submission history")
		}
	case achievementContests:
		if changesErr != nil {
			return nil, safeErr(changesErr, "fetch rating history")
		}
	}

	data := achievementData(handle, users[0], changes, subs, typ, args.Int("milestone_value"))
	png, err := render.AchievementCardPNG(data)
	if err != nil {
		return nil, errors.Wrap(err, "render achievement card")
	}
	res := cpbridge.Text(fmt.Sprintf("Achievement card for %s: %s", handle, data.Subtitle))
	res.AddImage(render.MIMEPNG, png)
	return res, nil
}

// achievementData picks the celebration wording for a milestone kind. A zero
// milestone value means derive one from the profile (rating or solved count
// rounded down to the nearest hundred).
func achievementData(handle string, u codeforces.User, changes []codeforces.RatingChange, subs []codeforces.Submission, typ string, milestone int) render.AchievementData {
	rank := u.Rank
	if rank == "" {
		rank = "Unrated"
	}
	d := render.AchievementData{Handle: handle}
	switch typ {
	case achievementRank:
		d.Title = "RANK PROMOTION!"
		d.Subtitle = fmt.Sprintf("%s is now %s!", handle, rank)
		d.Lines = []string{
			fmt.Sprintf("Rating: %d", u.Rating),
			"Keep climbing!",
		}
	case achievementProblems:
		solved := len(solvedSubmissions(subs))
		if milestone == 0 {
			milestone = solved / 100 * 100
		}
		d.Title = "CODING MILESTONE!"
		d.Subtitle = fmt.Sprintf("%s solved %d+ problems!", handle, milestone)
		d.Lines = []string{
			fmt.Sprintf("Total solved: %d", solved),
			fmt.Sprintf("Rating: %d", u.Rating),
		}
	case achievementContests:
		d.Title = "CONTEST WARRIOR!"
		d.Subtitle = fmt.Sprintf("%s participated in %d+ contests!", handle, len(changes))
		d.Lines = []string{
			fmt.Sprintf("Contests: %d", len(changes)),
			fmt.Sprintf("Rating: %d", u.Rating),
		}
	default: // rating milestone
		if milestone == 0 {
			milestone = u.Rating / 100 * 100
		}
		d.Title = "MILESTONE ACHIEVED!"
		d.Subtitle = fmt.Sprintf("%s reached %d+ rating!", handle, milestone)
		d.Lines = []string{
			fmt.Sprintf("Current rating: %d", u.Rating),
			fmt.Sprintf("Rank: %s", rank),
		}
	}
	return d
}

var comparisonCardDesc = cpbridge.Descriptor{
	Name:        "generate_comparison_card",
	Description: "Generate a side-by-side PNG comparison card for two to four Codeforces users.",
	Params: []cpbridge.Param{
		{Name: "handles", Type: cpbridge.TypeStringList, Description: "Two to four Codeforces handles", Required: true},
		{Name: "show_graph", Type: cpbridge.TypeBoolean, Description: "Include mini rating graphs on the cards", Default: true},
	},
}

func (s *Service) comparisonCard(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handles := args.StringList("handles")
	if len(handles) < 2 || len(handles) > 4 {
		return nil, cpbridge.NewArgumentError("comparison cards need between two and four handles, got %d", len(handles))
	}

	type outcome struct {
		data    render.ProfileData
		missing bool
		err     error
	}
	outcomes := make([]outcome, len(handles))
	var wg sync.WaitGroup
	for i, handle := range handles {
		wg.Add(1)
		go func(i int, handle string) {
			defer wg.Done()
			data, missing, err := s.profileData(ctx, handle)
			outcomes[i] = outcome{data: data, missing: missing, err: err}
		}(i, handle)
	}
	wg.Wait()

	var cards []render.ProfileData
	var skipped []string
	for i, o := range outcomes {
		switch {
		case o.err != nil:
			return nil, o.err
		case o.missing:
			skipped = append(skipped, handles[i])
		default:
			cards = append(cards, o.data)
		}
	}
	if len(cards) < 2 {
		return cpbridge.Text(fmt.Sprintf("Not enough known users for a comparison card. Not found on Codeforces: %s", strings.Join(skipped, ", "))), nil
	}

	png, err := render.ComparisonCardPNG(cards, args.Bool("show_graph"))
	if err != nil {
		return nil, errors.Wrap(err, "render comparison card")
	}
	included := make([]string, len(cards))
	for i, c := range cards {
		included[i] = c.Handle
	}
	res := cpbridge.Text(fmt.Sprintf("Profile comparison: %s", strings.Join(included, " vs ")))
	res.AddImage(render.MIMEPNG, png)
	if len(skipped) > 0 {
		res.AddText(fmt.Sprintf("Skipped (not found on Codeforces): %s", strings.Join(skipped, ", ")))
	}
	return res, nil
}

// profileData aggregates everything a card needs for one handle: the profile
// itself plus best-effort solved and contest counts. A missing handle is
// reported via the second return, not an error.
func (s *Service) profileData(ctx context.Context, handle string) (render.ProfileData, bool, error) {
	users, err := s.CF.UserInfo(ctx, []string{handle})
	if err != nil {
		if isNotFound(err) {
			return render.ProfileData{}, true, nil
		}
		return render.ProfileData{}, false, safeErr(err, "fetch user info")
	}
	if len(users) == 0 {
		return render.ProfileData{}, true, nil
	}
	u := users[0]
	data := render.ProfileData{
		Handle:      u.Handle,
		Rank:        u.Rank,
		Rating:      u.Rating,
		MaxRating:   u.MaxRating,
		MemberSince: time.Unix(u.RegistrationTimeSeconds, 0),
	}

	// Enrichment is best effort: a card with zero counts beats no card.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if subs, err := s.CF.UserStatus(ctx, handle, fetchProfile); err == nil {
			data.Solved = len(solvedSubmissions(subs))
		}
	}()
	go func() {
		defer wg.Done()
		if changes, err := s.CF.RatingChanges(ctx, handle); err == nil {
			data.Contests = len(changes)
			history := make([]int, len(changes))
			for i, c := range changes {
				history[i] = c.NewRating
			}
			data.History = history
		}
	}()
	wg.Wait()
	return data, false, nil
}
