package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"daylist/internal/model"
)

// Draft is the structured result of quick-add parsing.
type Draft struct {
	Title      string
	When       *time.Time
	Importance model.Importance
}

var (
	highTokenRe = regexp.MustCompile(`(?i)(^|\s)!?(urgent|high)\b`)
	lowTokenRe  = regexp.MustCompile(`(?i)(^|\s)!?low\b`)
	dayWordRe   = regexp.MustCompile(`(?i)(^|\s)(today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var recognizer = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// recognizeFunc finds the first date/time expression in text. It reports the
// byte range of the match and the resolved timestamp.
type recognizeFunc func(text string, base time.Time) (start, end int, at time.Time, ok bool)

func recognizeNatural(text string, base time.Time) (int, int, time.Time, bool) {
	r, err := recognizer.Parse(text, base)
	if err != nil || r == nil {
		return 0, 0, time.Time{}, false
	}
	return r.Index, r.Index + len(r.Text), r.Time, true
}

// Parse turns a raw quick-add string into a draft task. Importance tokens
// are extracted first, then the first date/time expression, then a literal
// today/tomorrow/weekday fallback. The remaining text becomes the title;
// a title that would come out empty falls back to the trimmed input.
// Parse is pure: same input and reference time, same draft.
func Parse(input string, now time.Time) Draft {
	return parse(input, now, recognizeNatural)
}

func parse(input string, now time.Time, recognize recognizeFunc) Draft {
	draft := Draft{Importance: model.ImportanceNormal}
	text := input

	switch {
	case highTokenRe.MatchString(text):
		draft.Importance = model.ImportanceHigh
		text = highTokenRe.ReplaceAllString(text, "${1}")
	case lowTokenRe.MatchString(text):
		draft.Importance = model.ImportanceLow
		text = lowTokenRe.ReplaceAllString(text, "${1}")
	}

	matched := false
	if recognize != nil {
		if start, end, at, ok := recognize(text, now); ok {
			draft.When = &at
			text = text[:start] + " " + text[end:]
			matched = true
		}
	}
	if !matched {
		if loc := dayWordRe.FindStringSubmatchIndex(text); loc != nil {
			word := strings.ToLower(text[loc[4]:loc[5]])
			at := resolveDayWord(word, now)
			draft.When = &at
			text = text[:loc[4]] + text[loc[5]:]
		}
	}

	draft.Title = strings.Join(strings.Fields(text), " ")
	if draft.Title == "" {
		draft.Title = strings.TrimSpace(input)
	}
	return draft
}

func resolveDayWord(word string, now time.Time) time.Time {
	switch word {
	case "today":
		return startOfDay(now)
	case "tomorrow":
		return startOfDay(now).AddDate(0, 0, 1)
	}
	target := weekdays[word]
	days := (int(target) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return startOfDay(now).AddDate(0, 0, days)
}

func startOfDay(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
}
