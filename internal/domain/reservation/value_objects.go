package reservation

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"table-reserve/internal/domain/venue"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component.
type Date struct {
	value time.Time
}

func NewDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errors.New("date must be formatted as YYYY-MM-DD")
	}
	return Date{value: t}, nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{value: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Time() time.Time {
	return d.value
}

func (d Date) String() string {
	return d.value.Format(dateLayout)
}

func (d Date) IsZero() bool {
	return d.value.IsZero()
}

type PartySize struct {
	value int
}

func NewPartySize(n int, table venue.TableID) (PartySize, error) {
	if n < 1 {
		return PartySize{}, errors.New("party size must be at least 1")
	}
	if capacity := venue.CapacityOf(table); n > capacity {
		return PartySize{}, errors.New("party size exceeds table capacity")
	}
	return PartySize{value: n}, nil
}

func (p PartySize) Int() int {
	return p.value
}

// Contact is the customer contact block. Phone is normalized to a leading
// plus sign followed by digits only.
type Contact struct {
	name  string
	phone string
	email string
}

func NewContact(name, phone, email string) (Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Contact{}, errors.New("customer name is required")
	}

	normalized, err := normalizePhone(phone)
	if err != nil {
		return Contact{}, err
	}

	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return Contact{}, errors.New("email is malformed")
	}

	return Contact{name: name, phone: normalized, email: email}, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Phone() string { return c.phone }
func (c Contact) Email() string { return c.email }

func normalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() < 7 || digits.Len() > 15 {
		return "", errors.New("phone number must contain 7 to 15 digits")
	}
	return "+" + digits.String(), nil
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
