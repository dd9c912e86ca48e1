package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilingStatus is the federal filing status a bracket table and threshold set
// are keyed on. The zero value means no profile has been set.
type FilingStatus string

const (
	Single                  FilingStatus = "single"
	MarriedFilingJointly    FilingStatus = "married_filing_jointly"
	MarriedFilingSeparately FilingStatus = "married_filing_separately"
	HeadOfHousehold         FilingStatus = "head_of_household"
)

// FilingStatuses lists every supported status in display order.
var FilingStatuses = []FilingStatus{Single, MarriedFilingJointly, MarriedFilingSeparately, HeadOfHousehold}

var filingStatusAliases = map[string]FilingStatus{
	"single":                    Single,
	"s":                         Single,
	"married_filing_jointly":    MarriedFilingJointly,
	"marriedjoint":              MarriedFilingJointly,
	"married_joint":             MarriedFilingJointly,
	"joint":                     MarriedFilingJointly,
	"mfj":                       MarriedFilingJointly,
	"married_filing_separately": MarriedFilingSeparately,
	"marriedseparate":           MarriedFilingSeparately,
	"married_separate":          MarriedFilingSeparately,
	"separate":                  MarriedFilingSeparately,
	"mfs":                       MarriedFilingSeparately,
	"head_of_household":         HeadOfHousehold,
	"headofhousehold":           HeadOfHousehold,
	"hoh":                       HeadOfHousehold,
}

// ParseFilingStatus accepts canonical names plus the short and camel-case
// aliases found in older ledger files.
func ParseFilingStatus(s string) (FilingStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if fs, ok := filingStatusAliases[key]; ok {
		return fs, nil
	}
	return "", fmt.Errorf("unknown filing status %q", s)
}

// Valid reports whether fs is one of the supported statuses.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case Single, MarriedFilingJointly, MarriedFilingSeparately, HeadOfHousehold:
		return true
	}
	return false
}

// Label returns a human-readable name.
func (fs FilingStatus) Label() string {
	switch fs {
	case Single:
		return "Single"
	case MarriedFilingJointly:
		return "Married Filing Jointly"
	case MarriedFilingSeparately:
		return "Married Filing Separately"
	case HeadOfHousehold:
		return "Head of Household"
	default:
		return "Unknown"
	}
}

// UnmarshalYAML decodes a status through ParseFilingStatus.
func (fs *FilingStatus) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseFilingStatus(raw)
	if err != nil {
		return err
	}
	*fs = parsed
	return nil
}
