// Package cptools implements the tool set: aggregation handlers over the
// Codeforces, LeetCode, and clist clients, registered against the bridge.
package cptools

import (
	"github.com/cockroachdb/errors"

	"github.com/cpbridge/cpbridge"
	"github.com/cpbridge/cpbridge/clist"
	"github.com/cpbridge/cpbridge/codeforces"
	"github.com/cpbridge/cpbridge/leetcode"
	"github.com/cpbridge/cpbridge/upstream"
)

// Service bundles the upstream clients the handlers fan out to.
type Service struct {
	CF       *codeforces.Client
	LC       *leetcode.Client
	Contests *clist.Client

	// OwnerID is the configured owner identity returned by the validate tool.
	OwnerID string
}

// Register adds every tool to the registry. Called once at startup; the first
// registration failure aborts.
func Register(reg *cpbridge.Registry, s *Service) error {
	type tool struct {
		desc    cpbridge.Descriptor
		handler cpbridge.Handler
	}
	tools := []tool{
		{aboutDesc, s.about},
		{capabilitiesDesc, s.capabilities},
		{validateDesc, s.validate},
		{healthCheckDesc, s.healthCheck},
		{userStatsDesc, s.userStats},
		{recommendDesc, s.recommendProblems},
		{solvedDesc, s.solvedProblems},
		{ratingChangesDesc, s.ratingChanges},
		{histogramDesc, s.ratingHistogram},
		{compareDesc, s.compareUsers},
		{dailyDesc, s.dailyProblem},
		{contestsDesc, s.upcomingContests},
		{ratingGraphDesc, s.ratingGraph},
		{performanceGraphDesc, s.performanceGraph},
		{distributionDesc, s.solvedDistribution},
		{verdictsDesc, s.verdictDistribution},
		{profileCardDesc, s.profileCard},
		{achievementCardDesc, s.achievementCard},
		{comparisonCardDesc, s.comparisonCard},
	}
	for _, t := range tools {
		if err := reg.Register(t.desc, t.handler); err != nil {
			return err
		}
	}
	return nil
}

// safeErr converts upstream failures into display-safe handler errors: API
// rejections surface the upstream's own message, transport failures surface a
// generic note, anything else stays wrapped for logs only.
func safeErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if ae, ok := upstream.AsAPIError(err); ok {
		return &cpbridge.HandlerError{Detail: ae.Message, Err: err}
	}
	if _, ok := upstream.AsNetworkError(err); ok {
		return &cpbridge.HandlerError{Detail: "network connection error, please try again", Err: err}
	}
	return errors.Wrap(err, op)
}

// requireHandle extracts the handle argument, which may have been filled by
// the identity default. Absence is a caller problem, not an internal fault.
func requireHandle(args cpbridge.Args) (string, error) {
	handle := args.String("handle")
	if handle == "" {
		return "", cpbridge.NewArgumentError("no handle provided and no default handle is configured")
	}
	return handle, nil
}

func requireHandles(args cpbridge.Args) ([]string, error) {
	handles := args.StringList("handles")
	if len(handles) == 0 {
		return nil, cpbridge.NewArgumentError("no handles provided and no default handle is configured")
	}
	return handles, nil
}
