package content

// RationaleSkill is a skill the rationale generator knows about.
type RationaleSkill string

const (
	RationaleFollowingInstructions    RationaleSkill = "following_instructions"
	RationaleAcceptingNo              RationaleSkill = "accepting_no"
	RationaleDisagreeingAppropriately RationaleSkill = "disagreeing_appropriately"
)

var rationaleSkillLabels = []Option{
	{Value: string(RationaleFollowingInstructions), Label: "Following Instructions"},
	{Value: string(RationaleAcceptingNo), Label: "Accepting 'No'"},
	{Value: string(RationaleDisagreeingAppropriately), Label: "Disagreeing Appropriately"},
}

// Label returns the display text, or "" when s is unknown.
func (s RationaleSkill) Label() string {
	return labelOf(rationaleSkillLabels, string(s))
}

// Valid reports whether s is known.
func (s RationaleSkill) Valid() bool {
	return s.Label() != ""
}

// RationaleType is the angle a rationale takes.
type RationaleType string

const (
	RationaleBenefitToYouth   RationaleType = "benefit_to_youth"
	RationaleConcernForOthers RationaleType = "concern_for_others"
	RationaleNegativeOutcome  RationaleType = "negative_outcome"
)

var rationaleTypeLabels = []Option{
	{Value: string(RationaleBenefitToYouth), Label: "Benefit to Youth"},
	{Value: string(RationaleConcernForOthers), Label: "Concern for Others"},
	{Value: string(RationaleNegativeOutcome), Label: "Negative Outcome"},
}

// Label returns the display text, or "" when t is unknown.
func (t RationaleType) Label() string {
	return labelOf(rationaleTypeLabels, string(t))
}

// Valid reports whether t is known.
func (t RationaleType) Valid() bool {
	return t.Label() != ""
}

const defaultRationale = "Using this skill shows maturity and helps others feel respected."

var rationales = map[RationaleSkill]map[RationaleType]string{
	RationaleFollowingInstructions: {
		RationaleBenefitToYouth: "If you follow instructions now, you might finish sooner and have more time for video games.",
	},
	RationaleAcceptingNo: {
		RationaleNegativeOutcome: "If you don't accept no, you might lose more points and stay on Level I longer.",
	},
}

// Rationale returns the example rationale for a skill and angle. Pairs
// without a specific example share a general one.
func Rationale(skill RationaleSkill, kind RationaleType) string {
	if byType, ok := rationales[skill]; ok {
		if text, ok := byType[kind]; ok {
			return text
		}
	}
	return defaultRationale
}

// RationaleOptions lists the generator's choices.
func RationaleOptions() (skills, kinds []Option) {
	return append([]Option(nil), rationaleSkillLabels...), append([]Option(nil), rationaleTypeLabels...)
}
