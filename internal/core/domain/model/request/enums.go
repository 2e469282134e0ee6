package request

import (
	"fmt"

	"aidmatch/internal/pkg/errs"
)

// Kind distinguishes the two request flavors the engine matches.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindVolunteerAssistance is a request for in-person help from a volunteer.
	// Requests of this kind must carry a category.
	KindVolunteerAssistance

	// KindAmbulance is a request for ambulance transport.
	KindAmbulance
)

// getValidKindStrings returns only valid Kind values, supporting validation.
func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[Kind]string{
		KindVolunteerAssistance: "volunteer-assistance",
		KindAmbulance:           "ambulance",
	}
}

// Validate checks that the Kind is one of the defined values.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// String returns the wire name of the kind. Implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := getValidKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// KindFromString parses a kind from its wire name.
func KindFromString(s string) (Kind, error) {
	for k, str := range getValidKindStrings() {
		if str == s {
			return k, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind is invalid",
		fmt.Errorf("%q is not a valid kind", s))
}

// Category classifies volunteer-assistance requests. It is required when the
// kind is volunteer-assistance and absent for ambulance requests.
type Category int

const (
	// CategoryNone means no category is set. Valid only for ambulance requests.
	CategoryNone Category = iota
	// CategoryMedical covers medical help such as medicine pickup or care visits.
	CategoryMedical
	// CategoryEldercare covers assistance to elderly people.
	CategoryEldercare
	// CategoryMaintenance covers household repair and maintenance help.
	CategoryMaintenance
	// CategoryTransportation covers rides and transport of goods.
	CategoryTransportation
	// CategoryGeneral covers everything else.
	CategoryGeneral
)

func getValidCategoryStrings() map[Category]string {
	//nolint:exhaustive // CategoryNone is intentionally excluded as it's not a real category
	return map[Category]string{
		CategoryMedical:        "medical",
		CategoryEldercare:      "eldercare",
		CategoryMaintenance:    "maintenance",
		CategoryTransportation: "transportation",
		CategoryGeneral:        "general",
	}
}

// Validate checks that the Category is one of the defined values.
// CategoryNone fails validation; callers that allow an absent category
// must check for it explicitly.
func (c Category) Validate() error {
	if _, ok := getValidCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category is invalid",
			fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

// String returns the wire name of the category. Implements fmt.Stringer.
func (c Category) String() string {
	if s, ok := getValidCategoryStrings()[c]; ok {
		return s
	}
	return "none"
}

// CategoryFromString parses a category from its wire name.
func CategoryFromString(s string) (Category, error) {
	for c, str := range getValidCategoryStrings() {
		if str == s {
			return c, nil
		}
	}
	return CategoryNone, errs.NewValueIsInvalidErrorWithCause("category is invalid",
		fmt.Errorf("%q is not a valid category", s))
}

// Priority indicates how urgent a request is. Priority is carried on the
// model for callers to display; it is not a ranking key in nearby matching.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota
	// PriorityNormal is the default priority.
	PriorityNormal
	// PriorityUrgent marks a request that needs attention as soon as possible.
	PriorityUrgent
)

func getValidPriorityStrings() map[Priority]string {
	//nolint:exhaustive // PriorityUnknown is intentionally excluded as it's invalid
	return map[Priority]string{
		PriorityNormal: "normal",
		PriorityUrgent: "urgent",
	}
}

// Validate checks that the Priority is one of the defined values.
func (p Priority) Validate() error {
	if _, ok := getValidPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the wire name of the priority. Implements fmt.Stringer.
func (p Priority) String() string {
	if s, ok := getValidPriorityStrings()[p]; ok {
		return s
	}
	return "unknown"
}

// PriorityFromString parses a priority from its wire name.
func PriorityFromString(s string) (Priority, error) {
	for p, str := range getValidPriorityStrings() {
		if str == s {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority is invalid",
		fmt.Errorf("%q is not a valid priority", s))
}
