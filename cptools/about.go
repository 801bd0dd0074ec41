package cptools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cpbridge/cpbridge"
)

var aboutDesc = cpbridge.Descriptor{
	Name:        "about",
	Description: "Describe what this assistant can do.",
}

func (s *Service) about(_ context.Context, _ cpbridge.Args) (*cpbridge.Result, error) {
	return cpbridge.Text(strings.TrimSpace(`
**Competitive Programming Assistant**

I aggregate data from Codeforces, LeetCode and clist.by:
- User stats, rating history and solved-problem analytics
- Problem recommendations tuned to your rating
- Upcoming contests across platforms
- Rating graphs, distributions and shareable profile cards

Ask for my capabilities to see the full tool list.`)), nil
}

var capabilitiesDesc = cpbridge.Descriptor{
	Name:        "show_bot_capabilities",
	Description: "List every available tool grouped by category.",
}

func (s *Service) capabilities(_ context.Context, _ cpbridge.Args) (*cpbridge.Result, error) {
	return cpbridge.Text(strings.TrimSpace(`
**Capabilities**

*Codeforces*
- get_codeforces_user_stats - rating, rank and profile info
- recommend_problems - unsolved problems in a rating window
- get_solved_problems - recently solved problems
- get_rating_changes - recent contest results
- get_solved_rating_histogram - solved problems by rating bucket
- compare_codeforces_users - head-to-head comparison

*LeetCode*
- get_leetcode_daily_problem - today's daily challenge

*Contests*
- get_upcoming_contests - upcoming contests across platforms

*Charts and cards*
- plot_rating_graph - rating history graph
- plot_performance_graph - per-contest performance graph
- plot_solved_rating_distribution - solved-rating bar chart
- plot_verdict_distribution - verdict pie chart
- generate_profile_card - shareable profile card
- generate_achievement_card - milestone celebration card
- generate_comparison_card - side-by-side comparison card

*Service*
- about, validate, health_check`)), nil
}

var validateDesc = cpbridge.Descriptor{
	Name:        "validate",
	Description: "Return the configured owner identity of this deployment.",
}

func (s *Service) validate(_ context.Context, _ cpbridge.Args) (*cpbridge.Result, error) {
	if s.OwnerID == "" {
		return cpbridge.Text("No owner is configured for this deployment."), nil
	}
	return cpbridge.Text(s.OwnerID), nil
}

var healthCheckDesc = cpbridge.Descriptor{
	Name:        "health_check",
	Description: "Report service liveness.",
}

func (s *Service) healthCheck(_ context.Context, _ cpbridge.Args) (*cpbridge.Result, error) {
	return cpbridge.Text(fmt.Sprintf("ok @ %s", time.Now().UTC().Format(time.RFC3339))), nil
}
