package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PresentLabel is the data-file spelling of an ongoing end date.
const PresentLabel = "present"

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Date is a calendar year-month, or the Ongoing sentinel.
type Date struct {
	Year    int
	Month   time.Month
	Ongoing bool
}

// Ongoing is the "present" end date. It sorts after every concrete date.
var Ongoing = Date{Ongoing: true}

// Month returns a concrete year-month date.
func Month(year int, month time.Month) Date {
	return Date{Year: year, Month: month}
}

// ParseDate parses "YYYY-MM" or "present".
func ParseDate(text string) (Date, error) {
	s := strings.TrimSpace(text)
	if strings.EqualFold(s, PresentLabel) {
		return Ongoing, nil
	}
	y, m, ok := strings.Cut(s, "-")
	if !ok || len(y) != 4 || len(m) != 2 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return Month(year, time.Month(month)), nil
}

// ParseInstant parses text and resolves it against now.
func ParseInstant(text string, now time.Time) (time.Time, error) {
	d, err := ParseDate(text)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time(now), nil
}

// Time resolves the date to an instant: the first instant of the month,
// or now for Ongoing.
func (d Date) Time(now time.Time) time.Time {
	if d.Ongoing {
		return now
	}
	return time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC)
}

// monthIndex counts months since year zero, resolving Ongoing to now.
func (d Date) monthIndex(now time.Time) int {
	if d.Ongoing {
		return now.Year()*12 + int(now.Month()) - 1
	}
	return d.Year*12 + int(d.Month) - 1
}

// Compare orders dates chronologically. Ongoing is after every concrete date.
func (d Date) Compare(o Date) int {
	switch {
	case d.Ongoing && o.Ongoing:
		return 0
	case d.Ongoing:
		return 1
	case o.Ongoing:
		return -1
	}
	a, b := d.Year*12+int(d.Month), o.Year*12+int(o.Month)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Date) IsZero() bool {
	return !d.Ongoing && d.Year == 0 && d.Month == 0
}

// String returns the data-file form ("2024-10" or "present").
func (d Date) String() string {
	if d.Ongoing {
		return PresentLabel
	}
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// Label returns the display form ("Oct 2024" or "Present").
func (d Date) Label() string {
	if d.Ongoing {
		return "Present"
	}
	if d.Month < time.January || d.Month > time.December {
		return d.String()
	}
	return fmt.Sprintf("%s %d", monthNames[d.Month-1], d.Year)
}

// FormatRange renders "Oct 2024 - Present".
func FormatRange(start, end Date) string {
	return start.Label() + " - " + end.Label()
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, b)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
