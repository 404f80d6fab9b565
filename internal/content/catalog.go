// Package content holds the static PEM curriculum: lookup tables that map a
// choice from a closed set to fixed explanatory text, and the judgmental
// language checker used on free-text behaviour descriptions.
package content

import (
	"fmt"

	"github.com/noah-isme/pem-portal-api/internal/models"
)

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Module is one section of the curriculum.
type Module struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Facet is a named item with a short description.
type Facet struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Foundations covers the treatment model's philosophy.
type Foundations struct {
	BioPsychoSocial []Facet  `json:"bio_psycho_social"`
	Hallmarks       []Facet  `json:"hallmarks"`
	CorePrinciples  []string `json:"core_principles"`
}

// ABCGuide explains the antecedent-behavior-consequence pattern.
type ABCGuide struct {
	Definitions      []Facet  `json:"definitions"`
	Antecedents      []Option `json:"antecedents"`
	ConsequenceTypes []Option `json:"consequence_types"`
	JudgmentalTerms  []string `json:"judgmental_terms"`
}

// InteractionGuide lists the steps of one teaching interaction.
type InteractionGuide struct {
	Type  models.InteractionType `json:"type"`
	Label string                 `json:"label"`
	Goal  string                 `json:"goal"`
	Steps []string               `json:"steps"`
}

// LevelInfo is one row of the motivation-system levels table.
type LevelInfo struct {
	Name      string `json:"name"`
	Focus     string `json:"focus"`
	Criteria  string `json:"criteria"`
	Threshold *int   `json:"threshold,omitempty"`
}

// CommunicationComponent is a bar in the quality components chart.
type CommunicationComponent struct {
	Component string `json:"component"`
	Impact    int    `json:"impact"`
}

// Professionalism gathers the boundaries module content.
type Professionalism struct {
	Headline            string                   `json:"headline"`
	Components          []CommunicationComponent `json:"components"`
	DangerSignals       []string                 `json:"danger_signals"`
	ProhibitedPractices []string                 `json:"prohibited_practices"`
}

var modules = []Module{
	{Key: "dashboard", Title: "Dashboard", Summary: "Point balance, level and Zero Rule status."},
	{Key: "foundations", Title: "1. Foundations & Hallmarks", Summary: "The bio-psycho-social approach and philosophical hallmarks."},
	{Key: "abc", Title: "2. The ABCs of Behavior", Summary: "Antecedents, behaviors and consequences."},
	{Key: "interactions", Title: "3. Teaching Interactions", Summary: "Proactive teaching, effective praise and corrective teaching."},
	{Key: "motivation", Title: "4. Motivation System Lab", Summary: "Point cards, levels and privileges."},
	{Key: "professionalism", Title: "5. Professionalism & Boundaries", Summary: "Quality components, boundaries and prohibited practices."},
}

var foundations = Foundations{
	BioPsychoSocial: []Facet{
		{Name: "Biological", Description: "Medical needs and physiological influences."},
		{Name: "Psychological", Description: "Individual, family, and group therapy."},
		{Name: "Social", Description: "Social skills, modeling, and teaching interactions."},
	},
	Hallmarks: []Facet{
		{Name: "Safety, Permanency, Well-being", Description: "Children must feel safe before goals can be met."},
		{Name: "Family Engagement", Description: "Parents are experts of their own family."},
		{Name: "Primary Change Agents", Description: "Staff who spend the most time with youth (60%) are the primary teachers."},
		{Name: "Behavioral Orientation", Description: "Positive, measurable impact based on actual change."},
		{Name: "Individualized Skill Acquisition", Description: "Methods adapted to the learner's characteristics."},
	},
	CorePrinciples: []string{
		"Behavior is learned.",
		"Insight is helpful but not sufficient.",
		"Rewards and punishers are individualized.",
	},
}

var abcDefinitions = []Facet{
	{Name: "A (Antecedent)", Description: "Internal or external events present before behavior."},
	{Name: "B (Behavior)", Description: "Anything a person says or does that is observable and measurable."},
	{Name: "C (Consequence)", Description: "Events that occur after behavior."},
}

var interactionGuides = map[models.InteractionType]InteractionGuide{
	models.InteractionProactiveTeaching: {
		Goal:  "Set them up for success before the behavior occurs.",
		Steps: []string{"Describe situation", "State expectations", "Give rationales", "Practice"},
	},
	models.InteractionEffectivePraise: {
		Goal:  "Reinforce specific positive behaviors.",
		Steps: []string{"Show approval", "Describe behavior specifically", "Give rationales", "Positive consequence"},
	},
	models.InteractionCorrectiveTeaching: {
		Goal:  "Decrease inappropriate behavior and provide an alternative.",
		Steps: []string{"Initial praise/approval", "Description of inappropriate behavior", "Consequence", "Alternative behavior/Practice"},
	},
}

var levelTable = []LevelInfo{
	{Name: string(models.LevelI), Focus: "Continuous reinforcement. High teaching (70-55/day).", Criteria: "Start here."},
	{Name: string(models.LevelII), Focus: "Progress to independence. 50-45 interactions.", Criteria: "21 days on Level I. 50k points.", Threshold: intPtr(50000)},
	{Name: string(models.LevelIII), Focus: "Positive Role Model. Social reinforcement.", Criteria: "14 days on Level II. 75k points.", Threshold: intPtr(75000)},
	{Name: "ITL", Focus: "Intensive Treatment. For major rule infractions.", Criteria: "Earn off points to return to level."},
}

var professionalism = Professionalism{
	Headline: "93% of communication is non-verbal.",
	Components: []CommunicationComponent{
		{Component: "Body Language", Impact: 58},
		{Component: "Voice Tone", Impact: 35},
		{Component: "Word Choice", Impact: 7},
	},
	DangerSignals: []string{
		"Spending disproportionate time with one youth",
		"Feeling you are the only one who understands them",
		"Treating them differently based on your feelings",
		"Disclosing personal information without therapeutic value",
		"Defensiveness when questioned about interactions",
	},
	ProhibitedPractices: []string{
		"Corporal Punishment",
		"Unreasonable Restitution",
		"Violating Rights (food, privacy, communication)",
		"Seclusion/Restraint (except for immediate safety)",
	},
}

// Modules lists the curriculum sections in navigation order.
func Modules() []Module {
	return append([]Module(nil), modules...)
}

// FoundationsContent returns the foundations module.
func FoundationsContent() Foundations {
	return foundations
}

// ABC returns the ABC analyzer reference material.
func ABC() ABCGuide {
	return ABCGuide{
		Definitions:      append([]Facet(nil), abcDefinitions...),
		Antecedents:      antecedentOptions(),
		ConsequenceTypes: consequenceOptions(),
		JudgmentalTerms:  JudgmentalTermList(),
	}
}

// Interaction returns the guide for one teaching interaction.
func Interaction(t models.InteractionType) (InteractionGuide, bool) {
	guide, ok := interactionGuides[t]
	if !ok {
		return InteractionGuide{}, false
	}
	guide.Type = t
	guide.Label = t.Label()
	guide.Steps = append([]string(nil), guide.Steps...)
	return guide, true
}

// Levels returns the levels and advancement table.
func Levels() []LevelInfo {
	return append([]LevelInfo(nil), levelTable...)
}

// ProfessionalismContent returns the boundaries module.
func ProfessionalismContent() Professionalism {
	return professionalism
}

// Antecedent is an ABC analyzer starting condition.
type Antecedent string

const (
	AntecedentInstruction Antecedent = "staff_instruction"
	AntecedentPeerTeases  Antecedent = "peer_teases"
	AntecedentBedtime     Antecedent = "bedtime"
	AntecedentLunchTime   Antecedent = "lunch_time"
)

var antecedentLabels = []Option{
	{Value: string(AntecedentInstruction), Label: "Staff gives instruction"},
	{Value: string(AntecedentPeerTeases), Label: "Peer teases"},
	{Value: string(AntecedentBedtime), Label: "Bedtime"},
	{Value: string(AntecedentLunchTime), Label: "Lunch time"},
}

// Label returns the display text, or "" when a is unknown.
func (a Antecedent) Label() string {
	return labelOf(antecedentLabels, string(a))
}

// Valid reports whether a is a known antecedent.
func (a Antecedent) Valid() bool {
	return a.Label() != ""
}

// ConsequenceType is an ABC analyzer consequence category.
type ConsequenceType string

const (
	ConsequencePositiveReinforcement ConsequenceType = "positive_reinforcement"
	ConsequenceNegativeReinforcement ConsequenceType = "negative_reinforcement"
	ConsequenceResponseCost          ConsequenceType = "response_cost"
)

var consequenceLabels = []Option{
	{Value: string(ConsequencePositiveReinforcement), Label: "Positive Reinforcement"},
	{Value: string(ConsequenceNegativeReinforcement), Label: "Negative Reinforcement"},
	{Value: string(ConsequenceResponseCost), Label: "Response Cost"},
}

// Label returns the display text, or "" when c is unknown.
func (c ConsequenceType) Label() string {
	return labelOf(consequenceLabels, string(c))
}

// Valid reports whether c is a known consequence type.
func (c ConsequenceType) Valid() bool {
	return c.Label() != ""
}

// Analysis phrases the ABC pattern back to the trainee.
func Analysis(a Antecedent, behavior string, c ConsequenceType) string {
	return fmt.Sprintf("Because the antecedent was '%s', the youth chose to '%s'. By applying '%s', you are influencing the likelihood this happens again.",
		a.Label(), behavior, c.Label())
}

func antecedentOptions() []Option {
	return append([]Option(nil), antecedentLabels...)
}

func consequenceOptions() []Option {
	return append([]Option(nil), consequenceLabels...)
}

func labelOf(options []Option, value string) string {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return ""
}

func intPtr(v int) *int {
	return &v
}
