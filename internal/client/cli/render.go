package cli

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/radar"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// isTerminal and termSize are test seams for golang.org/x/term.
var (
	isTerminal = term.IsTerminal
	termSize   = term.GetSize
)

const (
	defaultRadarRows = 8
	minRadarRows     = 4
	maxRadarRows     = 15
	blipLabels       = "123456789abcdefghijklmnopqrstuvwxyz"
)

// radarRows picks the radar radius in text rows from the terminal size.
// A cell is about twice as tall as it is wide, so columns are doubled.
func radarRows() int {
	fd := int(os.Stdout.Fd())
	if !isTerminal(fd) {
		return defaultRadarRows
	}
	w, h, err := termSize(fd)
	if err != nil {
		return defaultRadarRows
	}
	// legend and prompt need a few lines below the dial
	rows := min((h-8)/2, (w-1)/4)
	return max(minRadarRows, min(maxRadarRows, rows))
}

func blipLabel(i int) rune {
	if i < len(blipLabels) {
		return rune(blipLabels[i])
	}
	return '+'
}

func renderRadar(st radar.State, rows int) string {
	var b strings.Builder

	header := fmt.Sprintf("Radius %s mi, %s nearby", humanize.FtoaWithDigits(st.RadiusMiles, 1), humanize.Comma(int64(len(st.Users))))
	if !st.RefreshedAt.IsZero() {
		header += ", updated " + humanize.Time(st.RefreshedAt)
	}
	if st.Updating {
		header += " (updating)"
	}
	b.WriteString(header + "\n")
	if st.Location != nil {
		fmt.Fprintf(&b, "You are at %.4f, %.4f\n", st.Location.Latitude, st.Location.Longitude)
	}

	height, width := 2*rows+1, 4*rows+1
	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}
	cr, cc := rows, 2*rows

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			dy := float64(r - cr)
			dx := float64(c-cc) / 2
			d := math.Hypot(dx, dy)
			if math.Abs(d-float64(rows)) < 0.5 || math.Abs(d-float64(rows)/2) < 0.3 {
				grid[r][c] = '.'
			}
		}
	}
	grid[cr][cc] = '@'

	for i, blip := range st.Blips {
		blip.Radius = blip.Radius / radar.DefaultPixels * float64(rows)
		p := radar.Project(blip, radar.Point{})
		r := cr + int(math.Round(p.Y))
		c := cc + int(math.Round(p.X*2))
		r = max(0, min(height-1, r))
		c = max(0, min(width-1, c))
		grid[r][c] = blipLabel(i)
	}

	for _, line := range grid {
		b.WriteString(strings.TrimRight(string(line), " ") + "\n")
	}

	if len(st.Users) == 0 {
		b.WriteString("Nobody nearby. Try a larger 'radius'.\n")
		return b.String()
	}
	for i, u := range st.Users {
		mark := " "
		if st.Selected != nil && st.Selected.ID == u.ID {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %c  %-20s %7s mi  seen %s\n", mark, blipLabel(i), u.Name, humanize.FtoaWithDigits(u.DistanceMiles, 2), lastSeen(u.LastActive))
	}
	return b.String()
}

var lastActiveLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// lastSeen renders the backend's last-active timestamp relative to now.
// Timestamps without a zone are UTC.
func lastSeen(s string) string {
	for _, layout := range lastActiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return humanize.Time(t)
		}
	}
	if s == "" {
		return "unknown"
	}
	return s
}
