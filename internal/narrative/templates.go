package narrative

import (
	"fmt"
	"strings"
	"time"

	"github.com/forecastfusion/forecastfusion/internal/aggregate"
	"github.com/forecastfusion/forecastfusion/internal/wx"
)

// Each headline group keeps alternative phrasings, but variant 0 is always
// chosen so that identical input yields identical output.
var (
	agreementHeadlines = []string{
		"Models agree: %s expected %s",
		"Forecast models are aligned on %s %s",
	}
	transitionHeadlines = []string{
		"%s moving in %s",
		"A change to %s arrives %s",
	}
	disagreementHeadlines = []string{
		"Models disagree; %s is the most likely outcome %s",
		"Uncertain forecast, leaning toward %s %s",
	}
)

func (g *Generator) headline(f *aggregate.Forecast, t Type, now time.Time) string {
	switch t {
	case TypeTransition:
		day, idx := transitionDay(f.Daily)
		if idx >= 0 {
			return capitalize(fmt.Sprintf(transitionHeadlines[0],
				day.Metrics.WeatherCode.Description(), dayLabel(day.Metrics.Date.Time, now)))
		}
		// Wet/dry flipped between first and last day but never on a
		// single boundary; fall through to the agreement phrasing
		fallthrough
	case TypeAgreement:
		return capitalize(fmt.Sprintf(agreementHeadlines[0],
			dominantCondition(f.Daily), dayLabel(f.Daily[0].Metrics.Date.Time, now)))
	default:
		return capitalize(fmt.Sprintf(disagreementHeadlines[0],
			dominantCondition(f.Daily), dayLabel(f.Daily[0].Metrics.Date.Time, now)))
	}
}

func (g *Generator) body(f *aggregate.Forecast, t Type, meanScore float64, now time.Time) string {
	var sentences []string

	first := f.Daily[0].Metrics.Date.Time
	last := f.Daily[len(f.Daily)-1].Metrics.Date.Time
	sentences = append(sentences, capitalize(fmt.Sprintf("%s dominates the period from %s through %s.",
		dominantCondition(f.Daily), dayLabel(first, now), dayLabel(last, now))))

	if t == TypeDisagreement || t == TypeTransition {
		if s := g.divergenceSentence(f, now); s != "" {
			sentences = append(sentences, s)
		}
	}

	sentences = append(sentences, fmt.Sprintf("Overall confidence in this outlook is %s.",
		wx.ConfidenceLevelForScore(meanScore)))

	return strings.Join(sentences, " ")
}

// divergenceSentence names the models at the extremes of the widest daily
// temperature spread, with their raw values rather than the consensus.
func (g *Generator) divergenceSentence(f *aggregate.Forecast, now time.Time) string {
	byDay := perModelDailyValues(f)

	var bestDay time.Time
	var bestSpread float64
	var lo, hi modelDayValues
	for _, day := range sortedDays(byDay) {
		values := byDay[day]
		if len(values) < 2 {
			continue
		}
		loIdx, hiIdx := temperatureExtremes(values)
		spread := values[hiIdx].tempMax - values[loIdx].tempMax
		if spread > bestSpread {
			bestSpread = spread
			bestDay = day
			lo, hi = values[loIdx], values[hiIdx]
		}
	}
	if bestSpread == 0 {
		return ""
	}

	return fmt.Sprintf("%s and %s diverge %s: %.1f°C from %s against %.1f°C from %s.",
		hi.model.DisplayName(), lo.model.DisplayName(), dayLabel(bestDay, now),
		hi.tempMax, hi.model.DisplayName(), lo.tempMax, lo.model.DisplayName())
}

func (g *Generator) alerts(f *aggregate.Forecast, meanScore float64, now time.Time) []string {
	var alerts []string

	last := f.Daily[len(f.Daily)-1].Metrics.Date.Time
	if calendarDaysBetween(now, last) >= uncertaintyAlertDays {
		alerts = append(alerts,
			fmt.Sprintf("Details beyond day %d of this outlook are uncertain; expect revisions.", uncertaintyAlertDays))
	}
	if meanScore < 0.5 {
		alerts = append(alerts, "Forecast models disagree significantly; treat this outlook with caution.")
	}
	return alerts
}

// dayLabel renders a date relative to now: today, tomorrow, a weekday name
// up to six days out, and an absolute date beyond that.
func dayLabel(date, now time.Time) string {
	switch days := calendarDaysBetween(now, date); {
	case days <= 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days <= 6:
		return date.Weekday().String()
	default:
		return date.Format("January 2")
	}
}

// calendarDaysBetween counts whole calendar days from a to b in UTC.
func calendarDaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// dominantCondition returns the most frequent condition description in the
// daily series; ties keep the earliest-seen condition.
func dominantCondition(daily []aggregate.DailyForecast) string {
	counts := make(map[string]int)
	var order []string
	for _, d := range daily {
		desc := d.Metrics.WeatherCode.Description()
		if counts[desc] == 0 {
			order = append(order, desc)
		}
		counts[desc]++
	}

	best := ""
	for _, desc := range order {
		if best == "" || counts[desc] > counts[best] {
			best = desc
		}
	}
	return best
}

// transitionDay scans from the second day for the first day whose wet/dry
// classification differs from day zero. It detects a single binary
// transition only; the returned index is -1 when no flip exists.
func transitionDay(daily []aggregate.DailyForecast) (aggregate.DailyForecast, int) {
	firstWet := daily[0].Metrics.WeatherCode.IsWet()
	for i := 1; i < len(daily); i++ {
		if daily[i].Metrics.WeatherCode.IsWet() != firstWet {
			return daily[i], i
		}
	}
	return aggregate.DailyForecast{}, -1
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
