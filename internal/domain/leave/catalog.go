package leave

import "strings"

type Category string

const (
	CategoryAnnual    Category = "ANNUAL"
	CategorySick      Category = "SICK"
	CategoryCasual    Category = "CASUAL"
	CategoryMaternity Category = "MATERNITY"
	CategoryPaternity Category = "PATERNITY"
	CategoryEmergency Category = "EMERGENCY"
)

// Categories lists every leave category in display order.
var Categories = []Category{
	CategoryAnnual,
	CategorySick,
	CategoryCasual,
	CategoryMaternity,
	CategoryPaternity,
	CategoryEmergency,
}

// DefaultBalances is the allowance granted to a new employee. Categories
// without an entry start at zero and are only funded by SetBalance.
var DefaultBalances = map[Category]int{
	CategoryAnnual: 25,
	CategorySick:   10,
	CategoryCasual: 5,
}

var categoryNames = map[Category]string{
	CategoryAnnual:    "Annual Leave",
	CategorySick:      "Sick Leave",
	CategoryCasual:    "Casual Leave",
	CategoryMaternity: "Maternity Leave",
	CategoryPaternity: "Paternity Leave",
	CategoryEmergency: "Emergency Leave",
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// ParseCategory accepts the enum value in any case ("annual", "ANNUAL").
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

var statusNames = map[Status]string{
	StatusPending:   "Pending Approval",
	StatusApproved:  "Approved",
	StatusRejected:  "Rejected",
	StatusCancelled: "Cancelled",
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) DisplayName() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return string(s)
}

// Terminal reports whether no further decision can be taken.
func (s Status) Terminal() bool {
	return s != StatusPending
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	return s, s.Valid()
}
