package domain

import "sort"

// UncategorisedOrder is the sort order of any category not listed in the
// category table. It sorts after every known step.
const UncategorisedOrder = 99

var actionTypeLabels = map[string]string{
	"REFERRED":                           "Referred to Committee",
	"CONCURRED":                          "Senate Concurred",
	"HEARING_SCHEDULED":                  "Hearing Scheduled",
	"HEARING_RESCHEDULED":                "Hearing Rescheduled",
	"HEARING_LOCATION_CHANGED":           "Hearing Location Changed",
	"HEARING_TIME_CHANGED":               "Hearing Time Changed",
	"REPORTED":                           "Reported Out",
	"READ":                               "First Reading",
	"READ_SECOND":                        "Second Reading",
	"READ_THIRD":                         "Third Reading",
	"PASSED_TO_BE_ENGROSSED":             "Passed to Be Engrossed",
	"PLACED_IN_ORDERS":                   "Placed in Orders of the Day",
	"ENACTED":                            "Enacted",
	"SIGNED":                             "Signed by Governor",
	"AMENDED":                            "Amended",
	"ACCOMPANIED":                        "Accompanied",
	"DISCHARGED":                         "Discharged",
	"EMERGENCY_PREAMBLE":                 "Emergency Preamble",
	"REPORTING_EXTENDED":                 "Reporting Deadline Extended",
	"RULES_SUSPENDED":                    "Rules Suspended",
	"STEERING_REFERRAL":                  "Referred by Steering Committee",
	"STUDY_ORDER":                        "Study Order",
	"TITLE_CHANGED":                      "Title Changed",
	"REFERRED_TO_BILLS_IN_THIRD_READING": "Referred to Bills in Third Reading",
	"UNKNOWN":                            "Legislative Action",
}

// categoryOrder follows the legislative process: referral, hearing,
// readings, committee passage, floor passage, amendment, extension, signature.
var categoryOrder = map[string]int{
	"referral-committee":            1,
	"hearing-scheduled":             2,
	"hearing-rescheduled":           3,
	"hearing-updated":               4,
	"reading-1":                     5,
	"reading-2":                     6,
	"reading-3":                     7,
	"committee-passage":             8,
	"committee-passage-unfavorable": 9,
	"passage":                       10,
	"amendment-passage":             11,
	"deadline-extension":            12,
	"executive-signature":           13,
	"other":                         UncategorisedOrder,
}

// ActionLabel returns the human label for an action-type code. Codes
// missing from the table are their own label.
func ActionLabel(actionType string) string {
	if label, ok := actionTypeLabels[actionType]; ok {
		return label
	}
	return actionType
}

// ActionLabelPtr is ActionLabel for nullable codes.
func ActionLabelPtr(actionType *string) *string {
	if actionType == nil {
		return nil
	}
	label := ActionLabel(*actionType)
	return &label
}

// CategoryOrder returns the sort order for an action category.
func CategoryOrder(category string) int {
	if order, ok := categoryOrder[category]; ok {
		return order
	}
	return UncategorisedOrder
}

// CategoryOrderPtr is CategoryOrder for nullable categories; a missing
// category sorts last.
func CategoryOrderPtr(category *string) int {
	if category == nil {
		return UncategorisedOrder
	}
	return CategoryOrder(*category)
}

// KnownActionTypes returns the action-type codes with a fixed label, sorted.
func KnownActionTypes() []string {
	codes := make([]string, 0, len(actionTypeLabels))
	for code := range actionTypeLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// KnownCategories returns the categories with a fixed order, sorted by order.
func KnownCategories() []string {
	cats := make([]string, 0, len(categoryOrder))
	for cat := range categoryOrder {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		return categoryOrder[cats[i]] < categoryOrder[cats[j]]
	})
	return cats
}
