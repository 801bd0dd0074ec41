package cptools

import (
	"context"

	"github.com/cpbridge/cpbridge"
	"github.com/cpbridge/cpbridge/render"
)

var dailyDesc = cpbridge.Descriptor{
	Name:        "get_leetcode_daily_problem",
	Description: "Get today's LeetCode daily challenge with its problem statement.",
}

func (s *Service) dailyProblem(ctx context.Context, _ cpbridge.Args) (*cpbridge.Result, error) {
	daily, err := s.LC.DailyProblem(ctx)
	if err != nil {
		return nil, safeErr(err, "fetch daily problem")
	}
	if daily == nil {
		return cpbridge.Text("No daily problem is published yet, try again later."), nil
	}
	return cpbridge.Text(render.DailyProblem(daily)), nil
}
