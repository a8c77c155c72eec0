// ABOUTME: Health screening question table and response processor.
// ABOUTME: Yes answers are folded into pelvic and bone density risk flags.
package screening

import "github.com/scar96-claude/femtech-fitness-app/internal/models"

// Category groups screening questions by topic.
type Category string

const (
	CategoryPelvic  Category = "pelvic"
	CategoryBone    Category = "bone"
	CategoryGeneral Category = "general"
)

// TriggerFlag names the risk flag a yes answer sets.
type TriggerFlag string

const (
	TriggerPelvicRisk      TriggerFlag = "pelvicRisk"
	TriggerBoneDensityRisk TriggerFlag = "boneDensityRisk"
	TriggerNone            TriggerFlag = "none"
)

// Applicability restricts a question to a demographic.
type Applicability string

const (
	AppliesToAll           Applicability = "all"
	AppliesToReproductive  Applicability = "reproductive"
	AppliesToPerimenopause Applicability = "perimenopause"
)

// Question is a static yes/no screening question.
type Question struct {
	ID          string        `json:"id"`
	Category    Category      `json:"category"`
	Text        string        `json:"question"`
	TriggerFlag TriggerFlag   `json:"trigger_flag"`
	AppliesTo   Applicability `json:"applies_to"`
}

// Response is one answered question.
type Response struct {
	QuestionID string `json:"question_id"`
	Answer     bool   `json:"answer"`
}

// Result is the outcome of processing a set of responses.
type Result struct {
	PelvicRisk         bool     `json:"pelvic_risk"`
	BoneDensityRisk    bool     `json:"bone_density_risk"`
	FlaggedQuestionIDs []string `json:"flagged_question_ids"`
}

var questions = []Question{
	{
		ID: "pelvic-1", Category: CategoryPelvic, TriggerFlag: TriggerPelvicRisk, AppliesTo: AppliesToAll,
		Text: "Do you experience urine leakage when jumping, sneezing, coughing, or laughing?",
	},
	{
		ID: "pelvic-2", Category: CategoryPelvic, TriggerFlag: TriggerPelvicRisk, AppliesTo: AppliesToAll,
		Text: "Do you feel heaviness, pressure, or a bulging sensation in your pelvic area during or after exercise?",
	},
	{
		ID: "pelvic-3", Category: CategoryPelvic, TriggerFlag: TriggerPelvicRisk, AppliesTo: AppliesToAll,
		Text: "Have you been diagnosed with pelvic organ prolapse (POP)?",
	},
	{
		ID: "pelvic-4", Category: CategoryPelvic, TriggerFlag: TriggerPelvicRisk, AppliesTo: AppliesToAll,
		Text: "Have you been diagnosed with diastasis recti (abdominal separation)?",
	},
	{
		ID: "pelvic-5", Category: CategoryPelvic, TriggerFlag: TriggerPelvicRisk, AppliesTo: AppliesToReproductive,
		Text: "Have you given birth in the last 12 months?",
	},
	{
		ID: "bone-1", Category: CategoryBone, TriggerFlag: TriggerBoneDensityRisk, AppliesTo: AppliesToAll,
		Text: "Have you been diagnosed with osteopenia or osteoporosis?",
	},
	{
		ID: "bone-2", Category: CategoryBone, TriggerFlag: TriggerBoneDensityRisk, AppliesTo: AppliesToAll,
		Text: "Have you experienced a bone fracture from a minor fall, bump, or low-impact incident?",
	},
	{
		ID: "bone-3", Category: CategoryBone, TriggerFlag: TriggerBoneDensityRisk, AppliesTo: AppliesToPerimenopause,
		Text: "Do you have a family history of osteoporosis or hip fractures?",
	},
	{
		ID: "bone-4", Category: CategoryBone, TriggerFlag: TriggerBoneDensityRisk, AppliesTo: AppliesToAll,
		Text: "Have you taken corticosteroid medications (like prednisone) for more than 3 months?",
	},
}

// All returns every screening question in table order.
func All() []Question {
	return append([]Question(nil), questions...)
}

// QuestionsFor returns the questions that apply to demographic.
func QuestionsFor(demographic models.Demographic) []Question {
	var out []Question
	for _, q := range questions {
		if q.AppliesTo == AppliesToAll || string(q.AppliesTo) == string(demographic) {
			out = append(out, q)
		}
	}
	return out
}

// QuestionByID looks up a question. The second result is false when id is unknown.
func QuestionByID(id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Process converts responses into risk flags. Every yes answer is listed in
// FlaggedQuestionIDs in response order; only known questions set flags.
func Process(responses []Response) Result {
	res := Result{FlaggedQuestionIDs: []string{}}
	for _, r := range responses {
		if !r.Answer {
			continue
		}
		res.FlaggedQuestionIDs = append(res.FlaggedQuestionIDs, r.QuestionID)

		q, ok := QuestionByID(r.QuestionID)
		if !ok {
			continue
		}
		switch q.TriggerFlag {
		case TriggerPelvicRisk:
			res.PelvicRisk = true
		case TriggerBoneDensityRisk:
			res.BoneDensityRisk = true
		}
	}
	return res
}

// Apply copies the result's flags onto a profile.
func (r Result) Apply(p *models.Profile) {
	p.PelvicRisk = r.PelvicRisk
	p.BoneDensityRisk = r.BoneDensityRisk
	p.FlaggedQuestions = append([]string(nil), r.FlaggedQuestionIDs...)
}
