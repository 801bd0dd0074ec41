package cptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cpbridge/cpbridge"
	"github.com/cpbridge/cpbridge/render"
)

var contestsDesc = cpbridge.Descriptor{
	Name:        "get_upcoming_contests",
	Description: "List upcoming programming contests across platforms, soonest first.",
	Params: []cpbridge.Param{
		{Name: "platforms", Type: cpbridge.TypeStringList, Description: "Platforms to include (codeforces, leetcode, codechef, atcoder, topcoder, codingninjas)", Default: []string{"codeforces", "leetcode", "codechef"}},
		{Name: "limit", Type: cpbridge.TypeInteger, Description: "Maximum number of contests to list", Default: 10, Min: intp(1), Max: intp(30)},
	},
}

func (s *Service) upcomingContests(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	platforms := args.StringList("platforms")
	contests, err := s.Contests.Upcoming(ctx, platforms)
	if err != nil {
		return nil, safeErr(err, "fetch upcoming contests")
	}
	if len(contests) == 0 {
		return cpbridge.Text(fmt.Sprintf("No upcoming contests found for: %s.", strings.Join(platforms, ", "))), nil
	}
	if limit := args.Int("limit"); len(contests) > limit {
		contests = contests[:limit]
	}
	return cpbridge.Text(render.Contests(platforms, contests)), nil
}
