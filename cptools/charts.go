package cptools

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/cpbridge/cpbridge"
	"github.com/cpbridge/cpbridge/render"
)

var ratingGraphDesc = cpbridge.Descriptor{
	Name:        "plot_rating_graph",
	Description: "Plot rating-over-time graphs for one or more Codeforces users as a PNG image.",
	Params: []cpbridge.Param{
		{Name: "handles", Type: cpbridge.TypeStringList, Description: "Codeforces handles to plot", IdentityDefault: true},
	},
}

func (s *Service) ratingGraph(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handles, err := requireHandles(args)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		series  render.RatingSeries
		missing bool
		err     error
	}
	outcomes := make([]outcome, len(handles))
	var wg sync.WaitGroup
	for i, handle := range handles {
		wg.Add(1)
		go func(i int, handle string) {
			defer wg.Done()
			changes, err := s.CF.RatingChanges(ctx, handle)
			if err != nil {
				outcomes[i] = outcome{missing: isNotFound(err), err: err}
				return
			}
			points := make([]render.RatingPoint, len(changes))
			for j, c := range changes {
				points[j] = render.RatingPoint{
					Time:   time.Unix(c.RatingUpdateTimeSeconds, 0),
					Rating: c.NewRating,
				}
			}
			outcomes[i] = outcome{series: render.RatingSeries{Handle: handle, Points: points}}
		}(i, handle)
	}
	wg.Wait()

	var series []render.RatingSeries
	var skipped []string
	for i, o := range outcomes {
		switch {
		case o.err != nil && !o.missing:
			return nil, safeErr(o.err, "fetch rating history")
		case o.missing:
			skipped = append(skipped, handles[i])
		default:
			series = append(series, o.series)
		}
	}

	png, err := render.RatingGraphPNG(series)
	if errors.Is(err, render.ErrNotEnoughData) {
		msg := "Not enough rating history to plot a graph."
		if len(skipped) > 0 {
			msg += " Not found on Codeforces: " + strings.Join(skipped, ", ")
		}
		return cpbridge.Text(msg), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "render rating graph")
	}

	plotted := make([]string, len(series))
	for i, s := range series {
		plotted[i] = s.Handle
	}
	res := cpbridge.Text(fmt.Sprintf("Rating history for %s", strings.Join(plotted, ", ")))
	res.AddImage(render.MIMEPNG, png)
	if len(skipped) > 0 {
		res.AddText(fmt.Sprintf("Skipped (not found on Codeforces): %s", strings.Join(skipped, ", ")))
	}
	return res, nil
}

var performanceGraphDesc = cpbridge.Descriptor{
	Name:        "plot_performance_graph",
	Description: "Plot estimated per-contest performance ratings for a Codeforces user as a PNG image.",
	Params: []cpbridge.Param{
		{Name: "handle", Type: cpbridge.TypeString, Description: "Codeforces handle", IdentityDefault: true},
	},
}

func (s *Service) performanceGraph(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
	handle, err := requireHandle(args)
	if err != nil {
		return nil, err
	}
	changes, err := s.CF.RatingChanges(ctx, handle)
	if err != nil {
		if isNotFound(err) {
			return cpbridge.Text(fmt.Sprintf("User not found on Codeforces: %s", handle)), nil
		}
		return nil, safeErr(err, "fetch rating history")
	}
	points := make([]render.RatingPoint, len(changes))
	for i, c := range changes {
		points[i] = render.RatingPoint{
			Time:   time.Unix(c.RatingUpdateTimeSeconds, 0),
			Rating: performance(c.OldRating, c.NewRating),
		}
	}
	png, err := render.PerformanceGraphPNG(handle, points)
	if errors.Is(err, render.ErrNotEnoughData) {
		return cpbridge.Text(fmt.Sprintf("%s needs at least two rated contests for a performance graph.", handle)), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "render performance graph")
	}
	res := cpbridge.Text(fmt.Sprintf("Estimated contest performance for %s", handle))
	res.AddImage(render.MIMEPNG, png)
	return res, nil
}

var distributionDesc = cpbridge.Descriptor{
	Name:        "plot_solved_rating_distribution",
	Description: "Plot a bar chart of a user's solved Codeforces problems bucketed by rating, as a PNG image.",
	Params: []cpbridge.Param{
		{Name: "handle", Type: cpbridge.TypeString, Description: "Codeforces handle", IdentityDefault: true},
		{Name: "bin_size", Type: cpbridge.TypeInteger, Description: "Rating bucket width", Default: 100, Min: intp(100), Max: intp(400)},
	},
}

func (s *Service) solvedDistribution(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
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
	png, err := render.DistributionPNG(handle, binSize, bins)
	if errors.Is(err, render.ErrNotEnoughData) {
		return cpbridge.Text(fmt.Sprintf("%s has no solved problems with a rating.", handle)), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "render rating distribution")
	}
	res := cpbridge.Text(fmt.Sprintf("Solved rating distribution for %s (bin size %d)", handle, binSize))
	res.AddImage(render.MIMEPNG, png)
	return res, nil
}

var verdictsDesc = cpbridge.Descriptor{
	Name:        "plot_verdict_distribution",
	Description: "Plot a pie chart of a user's recent Codeforces submission verdicts as a PNG image.",
	Params: []cpbridge.Param{
		{Name: "handle", Type: cpbridge.TypeString, Description: "Codeforces handle", IdentityDefault: true},
	},
}

func (s *Service) verdictDistribution(ctx context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
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
	counts := make(map[string]int)
	for _, sub := range subs {
		if sub.Verdict == "" {
			continue
		}
		counts[sub.Verdict]++
	}
	png, err := render.VerdictPiePNG(handle, counts)
	if errors.Is(err, render.ErrNotEnoughData) {
		return cpbridge.Text(fmt.Sprintf("%s has no submissions to chart.", handle)), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "render verdict distribution")
	}
	res := cpbridge.Text(fmt.Sprintf("Submission verdict distribution for %s", handle))
	res.AddImage(render.MIMEPNG, png)
	return res, nil
}
