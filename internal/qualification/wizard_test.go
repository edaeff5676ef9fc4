package qualification

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func answerEverything(t *testing.T, w *Wizard) {
	t.Helper()
	for _, sec := range w.Model().Sections {
		for _, q := range sec.Questions {
			var v AnswerValue
			switch q.AnswerType {
			case AnswerBoolean:
				v = BoolValue(true)
			case AnswerCheckbox:
				v = ListValue(q.Options[:1])
			case AnswerOptions:
				v = TextValue(q.Options[0])
			default:
				v = TextValue("resposta")
			}
			if err := w.SetAnswer(q.ID, v); err != nil {
				t.Fatalf("SetAnswer(%s): %v", q.ID, err)
			}
		}
	}
}

func TestWizardSelectionGuards(t *testing.T) {
	w := NewWizard(nil)
	if w.Stage() != StageSelection {
		t.Fatalf("fresh wizard stage = %s", w.Stage())
	}

	if err := w.SelectScope("", []RequestingArea{AreaFinance}); !errors.Is(err, ErrNoScope) {
		t.Fatalf("missing supply type: err = %v", err)
	}
	if err := w.SelectScope(SupplyProduct, nil); !errors.Is(err, ErrNoScope) {
		t.Fatalf("no areas: err = %v", err)
	}
	if err := w.SelectScope(SupplyProduct, []RequestingArea{"marketing"}); !errors.Is(err, ErrNoScope) {
		t.Fatalf("unknown area: err = %v", err)
	}
	if w.Stage() != StageSelection {
		t.Fatalf("failed guard moved stage to %s", w.Stage())
	}

	if err := w.SelectScope(SupplyProduct, []RequestingArea{AreaFinance}); err != nil {
		t.Fatalf("valid scope: %v", err)
	}
	if w.Stage() != StageQuestionnaire {
		t.Fatalf("stage after scope = %s", w.Stage())
	}
	if w.Model() == nil {
		t.Fatalf("no model after scope selection")
	}
}

func TestWizardAdvanceGating(t *testing.T) {
	w := NewWizard(nil)
	if err := w.SelectScope(SupplyProduct, []RequestingArea{AreaFinance}); err != nil {
		t.Fatalf("scope: %v", err)
	}

	required := w.Model().RequiredQuestionIDs()
	ok, missing := w.CanAdvance()
	if ok || len(missing) != len(required) {
		t.Fatalf("fresh questionnaire: ok=%v missing=%d, want %d", ok, len(missing), len(required))
	}

	err := w.Advance()
	var inc *IncompleteError
	if !errors.As(err, &inc) {
		t.Fatalf("Advance: err = %v, want IncompleteError", err)
	}
	if len(inc.Unanswered) != len(required) {
		t.Fatalf("unanswered = %d, want %d", len(inc.Unanswered), len(required))
	}
	if w.Stage() != StageQuestionnaire {
		t.Fatalf("failed advance moved stage to %s", w.Stage())
	}

	answerEverything(t, w)
	if err := w.Advance(); err != nil {
		t.Fatalf("complete advance: %v", err)
	}
	if w.Stage() != StageReview {
		t.Fatalf("stage after advance = %s", w.Stage())
	}
}

// End-to-end scenario from the product docs: product supplier, finance
// area, four sections; one missing required answer blocks review and
// reports exactly 1.
func TestWizardProductFinanceEndToEnd(t *testing.T) {
	w := NewWizard(nil)
	if err := w.SelectScope(SupplyProduct, []RequestingArea{AreaFinance}); err != nil {
		t.Fatalf("scope: %v", err)
	}

	titles := sectionTitles(w.Model())
	want := []string{"Informações Gerais", "Qualidade do Produto", "Requisitos Financeiros", "Sustentabilidade e Compliance"}
	if len(titles) != 4 {
		t.Fatalf("sections = %v", titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("sections = %v, want %v", titles, want)
		}
	}

	answerEverything(t, w)

	// Blank one required answer.
	var victim string
	for _, sec := range w.Model().Sections {
		for _, q := range sec.Questions {
			if q.Required && q.AnswerType == AnswerText {
				victim = q.ID
			}
		}
	}
	if victim == "" {
		t.Fatalf("no required text question found")
	}
	if err := w.SetAnswer(victim, TextValue("")); err != nil {
		t.Fatalf("SetAnswer: %v", err)
	}

	err := w.Advance()
	var inc *IncompleteError
	if !errors.As(err, &inc) || len(inc.Unanswered) != 1 || inc.Unanswered[0] != victim {
		t.Fatalf("Advance = %v, want 1 unanswered (%s)", err, victim)
	}

	if err := w.SetAnswer(victim, TextValue("90 dias")); err != nil {
		t.Fatalf("SetAnswer: %v", err)
	}
	if err := w.Advance(); err != nil {
		t.Fatalf("Advance after fix: %v", err)
	}

	supplierID := uuid.New()
	rec, err := w.BuildRecord(supplierID)
	if err != nil {
		t.Fatalf("BuildRecord: %v", err)
	}
	if rec.SupplierID != supplierID || rec.ModelID != w.Model().ID {
		t.Fatalf("record ids wrong: %+v", rec)
	}
	if rec.FinalScore != w.Model().TotalMaxScore() {
		t.Fatalf("record score = %d, want %d", rec.FinalScore, w.Model().TotalMaxScore())
	}
	if len(rec.Answers) != len(w.Model().QuestionIDs()) {
		t.Fatalf("record answers = %d", len(rec.Answers))
	}
}

func TestWizardBackPreservesAnswers(t *testing.T) {
	w := NewWizard(nil)
	if err := w.SelectScope(SupplyService, []RequestingArea{AreaLegal}); err != nil {
		t.Fatalf("scope: %v", err)
	}
	answerEverything(t, w)
	answered := w.Answers().Len()

	if err := w.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := w.Back(); err != nil || w.Stage() != StageQuestionnaire {
		t.Fatalf("back to questionnaire: %v (%s)", err, w.Stage())
	}
	if w.Answers().Len() != answered {
		t.Fatalf("answers lost going back: %d -> %d", answered, w.Answers().Len())
	}
	if err := w.Back(); err != nil || w.Stage() != StageSelection {
		t.Fatalf("back to selection: %v (%s)", err, w.Stage())
	}
	if err := w.Back(); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("back past selection: %v", err)
	}
	if w.Answers().Len() != answered {
		t.Fatalf("answers lost at selection: %d", w.Answers().Len())
	}
}

// Changing scope rebuilds the model; answers for questions that survive
// (same deterministic id) are kept, the rest are pruned.
func TestWizardScopeChangePrunesOrphans(t *testing.T) {
	w := NewWizard(nil)
	if err := w.SelectScope(SupplyProduct, []RequestingArea{AreaFinance}); err != nil {
		t.Fatalf("scope: %v", err)
	}
	answerEverything(t, w)

	var productQ, generalQ string
	for _, sec := range w.Model().Sections {
		for _, q := range sec.Questions {
			switch sec.Title {
			case "Qualidade do Produto":
				productQ = q.ID
			case "Informações Gerais":
				generalQ = q.ID
			}
		}
	}

	if err := w.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if err := w.SelectScope(SupplyService, []RequestingArea{AreaFinance}); err != nil {
		t.Fatalf("rescope: %v", err)
	}

	if _, ok := w.Answers().Get(productQ); ok {
		t.Fatalf("orphaned product answer survived rescope")
	}
	if _, ok := w.Answers().Get(generalQ); !ok {
		t.Fatalf("general answer lost on rescope")
	}
}

func TestWizardStageErrors(t *testing.T) {
	w := NewWizard(nil)
	if err := w.SetAnswer("x", BoolValue(true)); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("SetAnswer at selection: %v", err)
	}
	if _, err := w.BuildRecord(uuid.New()); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("BuildRecord at selection: %v", err)
	}
	if err := w.SelectScope(SupplyProduct, []RequestingArea{AreaFinance}); err != nil {
		t.Fatalf("scope: %v", err)
	}
	if err := w.SetAnswer("nope", BoolValue(true)); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("unknown question: %v", err)
	}
	if err := w.SelectScope(SupplyService, []RequestingArea{AreaLegal}); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("rescope without back: %v", err)
	}
}
