package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

// MIMEPNG is the media type of every image this package produces.
const MIMEPNG = "image/png"

// ErrNotEnoughData reports that the input cannot produce a meaningful chart
// (e.g. fewer than two rating points for a line graph).
var ErrNotEnoughData = errors.New("not enough data points to draw a chart")

// RatingPoint is one contest result on a rating timeline.
type RatingPoint struct {
	Time   time.Time
	Rating int
}

// RatingSeries is one user's rating timeline.
type RatingSeries struct {
	Handle string
	Points []RatingPoint
}

// RatingGraphPNG draws rating-over-time lines for one or more users. Series
// with fewer than two points are skipped; when none remain the call fails
// with ErrNotEnoughData.
func RatingGraphPNG(series []RatingSeries) ([]byte, error) {
	var plotted []chart.Series
	for i, s := range series {
		if len(s.Points) < 2 {
			continue
		}
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = p.Time
			ys[j] = float64(p.Rating)
		}
		color := chart.GetDefaultColor(i)
		plotted = append(plotted, chart.TimeSeries{
			Name:    s.Handle,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: color, DotColor: color, DotWidth: 3},
		})
	}
	if len(plotted) == 0 {
		return nil, ErrNotEnoughData
	}
	graph := chart.Chart{
		Title:  "Codeforces Rating History",
		Width:  1200,
		Height: 700,
		XAxis:  chart.XAxis{Name: "Date"},
		YAxis:  chart.YAxis{Name: "Rating"},
		Series: plotted,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(&graph)
}

// PerformanceGraphPNG draws per-contest performance estimates for one user.
func PerformanceGraphPNG(handle string, points []RatingPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, ErrNotEnoughData
	}
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Time
		ys[i] = float64(p.Rating)
	}
	color := chart.GetDefaultColor(0)
	graph := chart.Chart{
		Title:  fmt.Sprintf("Codeforces Performance for %s", handle),
		Width:  1200,
		Height: 700,
		XAxis:  chart.XAxis{Name: "Date"},
		YAxis:  chart.YAxis{Name: "Performance Rating"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    handle,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: color, DotColor: color, DotWidth: 3},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(&graph)
}

// DistributionPNG draws a bar chart of solved-problem counts per rating bin.
func DistributionPNG(handle string, binSize int, bins map[int]int) ([]byte, error) {
	if len(bins) == 0 {
		return nil, ErrNotEnoughData
	}
	keys := make([]int, 0, len(bins))
	for k := range bins {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	bars := make([]chart.Value, 0, len(keys))
	for _, k := range keys {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d", k),
			Value: float64(bins[k]),
		})
	}
	graph := chart.BarChart{
		Title:    fmt.Sprintf("Solved Problem Rating Distribution for %s", handle),
		Width:    1200,
		Height:   700,
		BarWidth: 50,
		Bars:     bars,
	}
	return renderPNG(&graph)
}

// VerdictPiePNG draws submission verdict shares for one user. Labels are
// plotted in descending count order so slices are stable.
func VerdictPiePNG(handle string, counts map[string]int) ([]byte, error) {
	if len(counts) == 0 {
		return nil, ErrNotEnoughData
	}
	type slice struct {
		label string
		count int
	}
	slices := make([]slice, 0, len(counts))
	for label, count := range counts {
		slices = append(slices, slice{label, count})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].count != slices[j].count {
			return slices[i].count > slices[j].count
		}
		return slices[i].label < slices[j].label
	})
	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		values = append(values, chart.Value{Label: s.label, Value: float64(s.count)})
	}
	graph := chart.PieChart{
		Title:  fmt.Sprintf("Submission Verdicts for %s", handle),
		Width:  800,
		Height: 800,
		Values: values,
	}
	return renderPNG(&graph)
}

type pngRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderPNG(graph pngRenderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
