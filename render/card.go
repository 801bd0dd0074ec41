package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
)

// Card styles accepted by ProfileCardPNG.
const (
	StyleModern      = "modern"
	StyleMinimal     = "minimal"
	StyleDark        = "dark"
	StyleAchievement = "achievement"
)

// CardStyles lists the accepted profile-card styles.
var CardStyles = []string{StyleModern, StyleMinimal, StyleDark, StyleAchievement}

// ProfileData carries everything a card needs; the renderer performs no
// fetching or computation beyond layout.
type ProfileData struct {
	Handle      string
	Rank        string
	Rating      int
	MaxRating   int
	Solved      int
	Contests    int
	MemberSince time.Time
	History     []int // NewRating per contest, chronological
}

type rgb struct{ r, g, b int }

// rankColors follows the site's rank palette.
var rankColors = map[string]rgb{
	"newbie":                    {128, 128, 128},
	"pupil":                     {0, 128, 0},
	"specialist":                {3, 168, 158},
	"expert":                    {0, 0, 255},
	"candidate master":          {170, 0, 170},
	"master":                    {255, 140, 0},
	"international master":      {255, 140, 0},
	"grandmaster":               {255, 0, 0},
	"international grandmaster": {255, 0, 0},
	"legendary grandmaster":     {255, 0, 0},
}

func rankColor(rank string) rgb {
	if c, ok := rankColors[rank]; ok {
		return c
	}
	return rgb{128, 128, 128}
}

func fontFace(size float64) (font.Face, error) {
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

type cardTheme struct {
	width, height int
	bgTop, bgBot  rgb
	text          rgb
}

func themeFor(style string) cardTheme {
	switch style {
	case StyleDark:
		return cardTheme{800, 500, rgb{30, 30, 40}, rgb{50, 50, 60}, rgb{255, 255, 255}}
	case StyleMinimal:
		return cardTheme{700, 400, rgb{250, 250, 250}, rgb{240, 240, 240}, rgb{50, 50, 50}}
	case StyleAchievement:
		return cardTheme{850, 550, rgb{255, 240, 200}, rgb{255, 225, 160}, rgb{60, 45, 20}}
	default: // modern
		return cardTheme{850, 550, rgb{245, 245, 250}, rgb{235, 235, 245}, rgb{40, 40, 40}}
	}
}

// ProfileCardPNG draws a shareable profile card. Unknown styles fall back to
// modern; the mini rating graph is drawn only when includeGraph is set and at
// least two history points exist.
func ProfileCardPNG(d ProfileData, style string, includeGraph bool) ([]byte, error) {
	th := themeFor(style)
	accent := rankColor(d.Rank)

	dc := gg.NewContext(th.width, th.height)
	grad := gg.NewLinearGradient(0, 0, 0, float64(th.height))
	grad.AddColorStop(0, colorOf(th.bgTop))
	grad.AddColorStop(1, colorOf(th.bgBot))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(th.width), float64(th.height))
	dc.Fill()

	titleFace, err := fontFace(36)
	if err != nil {
		return nil, err
	}
	headerFace, err := fontFace(24)
	if err != nil {
		return nil, err
	}
	textFace, err := fontFace(18)
	if err != nil {
		return nil, err
	}
	smallFace, err := fontFace(14)
	if err != nil {
		return nil, err
	}

	y := 70.0
	dc.SetFontFace(titleFace)
	setRGB(dc, accent)
	dc.DrawString(d.Handle, 40, y)
	dc.SetFontFace(headerFace)
	setRGB(dc, th.text)
	dc.DrawString(rankOrUnrated(d.Rank), 40, y+40)

	y += 120
	dc.DrawString("Rating", 40, y)
	dc.SetFontFace(textFace)
	setRGB(dc, accent)
	ratingText := fmt.Sprintf("Current: %d", d.Rating)
	if d.MaxRating != d.Rating {
		ratingText += fmt.Sprintf(" (Max: %d)", d.MaxRating)
	}
	dc.DrawString(ratingText, 40, y+30)
	drawProgressBar(dc, 40, y+50, 300, 15, float64(d.Rating)/3000, accent)

	y += 120
	dc.SetFontFace(headerFace)
	setRGB(dc, th.text)
	dc.DrawString("Statistics", 40, y)
	dc.SetFontFace(textFace)
	dc.DrawString(fmt.Sprintf("Problems Solved: %d", d.Solved), 40, y+30)
	dc.DrawString("Member Since: "+d.MemberSince.UTC().Format("January 2006"), 40, y+58)
	if d.Contests > 0 {
		dc.DrawString(fmt.Sprintf("Contests: %d", d.Contests), 40, y+86)
	}

	if includeGraph && len(d.History) > 1 {
		drawMiniGraph(dc, float64(th.width)-320, 50, 280, 150, d.History, accent)
	}

	dc.SetFontFace(smallFace)
	dc.SetRGB255(150, 150, 150)
	dc.DrawString("Generated on "+time.Now().UTC().Format("January 2, 2006"), 40, float64(th.height)-25)
	dc.DrawString("Codeforces Profile", float64(th.width)-180, float64(th.height)-25)

	return encodePNG(dc)
}

// AchievementData carries the text for a milestone celebration card. The
// caller decides the wording; the renderer only lays it out.
type AchievementData struct {
	Handle   string
	Title    string
	Subtitle string
	Lines    []string
}

// AchievementCardPNG draws a celebration card: dark background, golden rays
// around the center, centered text and a scatter of stars.
func AchievementCardPNG(d AchievementData) ([]byte, error) {
	const width, height = 800, 600
	gold := rgb{255, 215, 0}

	dc := gg.NewContext(width, height)
	dc.SetRGB255(30, 30, 50)
	dc.Clear()

	cx, cy := float64(width)/2, float64(height)/2
	setRGB(dc, gold)
	dc.SetLineWidth(3)
	for deg := 0; deg < 360; deg += 30 {
		rad := gg.Radians(float64(deg))
		dc.DrawLine(
			cx+200*math.Cos(rad), cy+200*math.Sin(rad),
			cx+300*math.Cos(rad), cy+300*math.Sin(rad),
		)
		dc.Stroke()
	}

	titleFace, err := fontFace(42)
	if err != nil {
		return nil, err
	}
	subtitleFace, err := fontFace(26)
	if err != nil {
		return nil, err
	}
	textFace, err := fontFace(18)
	if err != nil {
		return nil, err
	}

	dc.SetFontFace(titleFace)
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(d.Title, cx, 110, 0.5, 0.5)

	dc.SetFontFace(subtitleFace)
	setRGB(dc, gold)
	dc.DrawStringAnchored(d.Subtitle, cx, 190, 0.5, 0.5)

	dc.SetFontFace(textFace)
	dc.SetRGB255(200, 200, 200)
	y := 280.0
	for _, line := range d.Lines {
		dc.DrawStringAnchored(line, cx, y, 0.5, 0.5)
		y += 35
	}

	setRGB(dc, gold)
	for _, p := range [][2]float64{{100, 150}, {700, 150}, {150, 450}, {650, 450}, {400, 400}} {
		dc.DrawRegularPolygon(5, p[0], p[1], 20, -math.Pi/2)
		dc.Fill()
	}

	dc.SetRGB255(150, 150, 150)
	footer := "Achievement unlocked on " + time.Now().UTC().Format("January 2, 2006")
	dc.DrawStringAnchored(footer, cx, float64(height)-40, 0.5, 0.5)

	return encodePNG(dc)
}

// ComparisonCardPNG draws a side-by-side grid of 2-4 profile cards.
func ComparisonCardPNG(cards []ProfileData, showGraph bool) ([]byte, error) {
	if len(cards) < 2 {
		return nil, ErrNotEnoughData
	}
	if len(cards) > 4 {
		cards = cards[:4]
	}
	width, height, cols := 900, 500, 2
	if len(cards) > 2 {
		height = 700
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB255(240, 240, 250)
	dc.Clear()

	titleFace, err := fontFace(32)
	if err != nil {
		return nil, err
	}
	headerFace, err := fontFace(20)
	if err != nil {
		return nil, err
	}
	textFace, err := fontFace(16)
	if err != nil {
		return nil, err
	}

	dc.SetFontFace(titleFace)
	dc.SetRGB255(50, 50, 50)
	dc.DrawStringAnchored("Profile Comparison", float64(width)/2, 40, 0.5, 0.5)

	rows := (len(cards) + cols - 1) / cols
	cardW := float64(width-60) / float64(cols)
	cardH := float64(height-100) / float64(rows)

	for i, card := range cards {
		col := i % cols
		row := i / cols
		x := 30 + float64(col)*(cardW+10)
		if len(cards) == 3 && i == 2 {
			x = (float64(width) - cardW) / 2
		}
		y := 80 + float64(row)*(cardH+10)
		accent := rankColor(card.Rank)

		dc.SetRGB255(250, 250, 250)
		dc.DrawRectangle(x, y, cardW, cardH)
		dc.Fill()
		setRGB(dc, accent)
		dc.SetLineWidth(3)
		dc.DrawRectangle(x, y, cardW, cardH)
		dc.Stroke()

		dc.SetFontFace(headerFace)
		dc.DrawString(card.Handle, x+15, y+35)
		dc.SetFontFace(textFace)
		dc.SetRGB255(100, 100, 100)
		dc.DrawString(rankOrUnrated(card.Rank), x+15, y+60)

		dc.SetRGB255(50, 50, 50)
		dc.DrawString(fmt.Sprintf("Rating: %d", card.Rating), x+15, y+95)
		if card.MaxRating != card.Rating {
			dc.SetRGB255(100, 100, 100)
			dc.DrawString(fmt.Sprintf("Max: %d", card.MaxRating), x+15, y+120)
		}
		dc.SetRGB255(50, 50, 50)
		dc.DrawString(fmt.Sprintf("Solved: %d", card.Solved), x+15, y+145)

		if showGraph && len(card.History) > 1 {
			drawMiniGraph(dc, x+15, y+170, cardW-30, 80, card.History, accent)
		}
	}
	return encodePNG(dc)
}

func drawProgressBar(dc *gg.Context, x, y, w, h, progress float64, accent rgb) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	dc.SetRGB255(200, 200, 200)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
	setRGB(dc, accent)
	dc.DrawRectangle(x, y, w*progress, h)
	dc.Fill()
}

func drawMiniGraph(dc *gg.Context, x, y, w, h float64, history []int, accent rgb) {
	dc.SetRGB255(255, 255, 255)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
	setRGB(dc, accent)
	dc.SetLineWidth(2)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()

	min, max := history[0], history[0]
	for _, v := range history {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}
	n := len(history)
	for i := 0; i < n-1; i++ {
		x1 := x + 10 + float64(i)*(w-20)/float64(n-1)
		y1 := y + h - 10 - float64(history[i]-min)/float64(span)*(h-20)
		x2 := x + 10 + float64(i+1)*(w-20)/float64(n-1)
		y2 := y + h - 10 - float64(history[i+1]-min)/float64(span)*(h-20)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
}

func setRGB(dc *gg.Context, c rgb) {
	dc.SetRGB255(c.r, c.g, c.b)
}

func colorOf(c rgb) color.Color {
	return color.RGBA{R: uint8(c.r), G: uint8(c.g), B: uint8(c.b), A: 255}
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
