package content

// Question is a multiple choice item. Answer stays server side.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"-"`
}

// Quiz is the knowledge check attached to one curriculum topic.
type Quiz struct {
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
}

var quizTopics = []string{"intro", "teaching", "deescalation", "ongoing", "principles", "motivation", "disruptive"}

var quizzes = map[string][]Question{
	"intro": {
		{Prompt: "What is the end goal of all Boys Town treatment and services?", Options: []string{"Temporary safety", "Permanency", "Strict discipline", "Isolation"}, Answer: 1},
		{Prompt: "Who are considered the primary change agents?", Options: []string{"Doctors", "Judges", "People closest to the children (Staff/Family)", "Administrators"}, Answer: 2},
	},
	"teaching": {
		{Prompt: "Which teaching interaction is used BEFORE a behavior occurs to set youth up for success?", Options: []string{"Effective Praise", "Corrective Teaching", "Proactive Teaching", "Crisis Intervention"}, Answer: 2},
		{Prompt: "What makes 'Effective Praise' different from general praise?", Options: []string{"It is louder", "It includes a rationale and positive consequence", "It is only done in groups", "It involves candy"}, Answer: 1},
	},
	"deescalation": {
		{Prompt: "What is 'Counter-Aggression'?", Options: []string{"Youth fighting each other", "A staff member's negative reaction to a youth's behavior", "Using physical restraint", "A type of therapy"}, Answer: 1},
		{Prompt: "When should you use the 'Detour' (De-Escalation) tools?", Options: []string{"Immediately upon seeing a youth", "When a youth becomes non-compliant during Corrective Teaching", "Only during Community Meeting", "When a youth is sleeping"}, Answer: 1},
	},
	"ongoing": {
		{Prompt: "What is the 2nd Consequence for ongoing behavior?", Options: []string{"-100 points", "-500 points for lack of Self-Control", "-1000 points", "Time Out"}, Answer: 1},
		{Prompt: "What must accompany the 2nd and 3rd consequences?", Options: []string{"A threat", "A Positive Correction (PC) statement", "A call to parents", "Physical restraint"}, Answer: 1},
	},
	"principles": {
		{Prompt: "In the ABC pattern, what does 'A' stand for?", Options: []string{"Action", "Antecedent", "Attitude", "Authority"}, Answer: 1},
		{Prompt: "Which consequence decreases behavior by taking away something positive?", Options: []string{"Positive Reinforcement", "Negative Reinforcement", "Response Cost", "Natural Consequence"}, Answer: 2},
	},
	"motivation": {
		{Prompt: "What is the primary purpose of the Motivation System?", Options: []string{"To punish youth", "To make staff's job easier", "To motivate youth to learn and change behavior", "To track attendance"}, Answer: 2},
		{Prompt: "Which level is for serious rule infractions like aggression or stealing?", Options: []string{"Level I", "Level III", "ITL (Intensive Treatment Level)", "Level IV"}, Answer: 2},
	},
	"disruptive": {
		{Prompt: "What is the point consequence for the 1st hour of PIP (Participating in Program)?", Options: []string{"-100 every 15 mins", "-200 every 15 mins", "-500 every hour", "-1000 flat fee"}, Answer: 1},
		{Prompt: "Emergency Safety Interventions (Restraint/Seclusion) are ONLY used for:", Options: []string{"Non-compliance", "Swearing", "Imminent threat of serious physical harm", "Disrespect"}, Answer: 2},
	},
}

// QuizTopics lists the topics that carry a quiz.
func QuizTopics() []string {
	return append([]string(nil), quizTopics...)
}

// QuizFor returns the quiz for topic.
func QuizFor(topic string) (Quiz, bool) {
	questions, ok := quizzes[topic]
	if !ok {
		return Quiz{}, false
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = Question{Prompt: q.Prompt, Options: append([]string(nil), q.Options...), Answer: q.Answer}
	}
	return Quiz{Topic: topic, Questions: out}, true
}
