package qualification

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Stage string

const (
	StageSelection     Stage = "selection"
	StageQuestionnaire Stage = "questionnaire"
	StageReview        Stage = "review"
)

var (
	// ErrNoScope is returned when SelectScope guards fail.
	ErrNoScope = errors.New("supply type and at least one requesting area are required")
	// ErrWrongStage is returned when an operation is not valid in the
	// wizard's current stage.
	ErrWrongStage = errors.New("operation not allowed in current stage")
	// ErrUnknownQuestion is returned for answers to questions the current
	// model does not contain.
	ErrUnknownQuestion = errors.New("unknown question")
)

// IncompleteError reports how many required questions block the transition
// to review.
type IncompleteError struct {
	Unanswered []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%d required question(s) unanswered", len(e.Unanswered))
}

// Wizard drives a single qualification run: selection → questionnaire →
// review. Backward transitions always succeed and keep recorded answers; a
// scope change rebuilds the model and prunes answers whose questions are
// gone. All state is in-memory; nothing is persisted until the caller
// submits the assembled Record.
type Wizard struct {
	builder *Builder
	stage   Stage

	supplyType SupplyType
	areas      []RequestingArea
	model      *Model
	answers    *AnswerStore
}

func NewWizard(builder *Builder) *Wizard {
	if builder == nil {
		builder = NewBuilder(nil)
	}
	return &Wizard{
		builder: builder,
		stage:   StageSelection,
		answers: NewAnswerStore(),
	}
}

func (w *Wizard) Stage() Stage                 { return w.stage }
func (w *Wizard) Model() *Model                { return w.model }
func (w *Wizard) Answers() *AnswerStore        { return w.answers }
func (w *Wizard) SupplyType() SupplyType       { return w.supplyType }
func (w *Wizard) Areas() []RequestingArea      { return append([]RequestingArea(nil), w.areas...) }

// SelectScope records the supply type and requesting areas, builds the
// questionnaire model, and advances to the questionnaire stage. Only valid
// from selection (use Back first to change an existing scope).
func (w *Wizard) SelectScope(supplyType SupplyType, areas []RequestingArea) error {
	if w.stage != StageSelection {
		return ErrWrongStage
	}
	if !supplyType.Valid() || len(areas) == 0 {
		return ErrNoScope
	}
	for _, a := range areas {
		if !a.Valid() {
			return fmt.Errorf("%w: unknown area %q", ErrNoScope, a)
		}
	}

	w.supplyType = supplyType
	w.areas = append([]RequestingArea(nil), areas...)
	w.model = w.builder.Build(supplyType, areas)
	w.answers.Prune(w.model.QuestionIDs())
	w.stage = StageQuestionnaire
	return nil
}

// SetAnswer records an answer for a question of the current model. Allowed
// in questionnaire and review (the review screen lets the user fix an
// answer before confirming).
func (w *Wizard) SetAnswer(questionID string, value AnswerValue) error {
	if w.stage == StageSelection {
		return ErrWrongStage
	}
	if _, ok := w.model.QuestionIDs()[questionID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	w.answers.Set(questionID, value)
	return nil
}

// CanAdvance reports whether the questionnaire is complete, and the ids of
// required questions still unanswered.
func (w *Wizard) CanAdvance() (bool, []string) {
	if w.stage != StageQuestionnaire {
		return false, nil
	}
	missing := w.answers.Unanswered(w.model.RequiredQuestionIDs())
	return len(missing) == 0, missing
}

// Advance moves questionnaire → review. On incomplete required answers it
// returns an *IncompleteError and stays put.
func (w *Wizard) Advance() error {
	if w.stage != StageQuestionnaire {
		return ErrWrongStage
	}
	if missing := w.answers.Unanswered(w.model.RequiredQuestionIDs()); len(missing) > 0 {
		return &IncompleteError{Unanswered: missing}
	}
	w.stage = StageReview
	return nil
}

// Back moves one stage backward, preserving recorded answers.
func (w *Wizard) Back() error {
	switch w.stage {
	case StageReview:
		w.stage = StageQuestionnaire
		return nil
	case StageQuestionnaire:
		w.stage = StageSelection
		return nil
	default:
		return ErrWrongStage
	}
}

// BuildRecord assembles the submission payload. Only valid at review.
func (w *Wizard) BuildRecord(supplierID uuid.UUID) (*Record, error) {
	if w.stage != StageReview {
		return nil, ErrWrongStage
	}
	return &Record{
		SupplierID:  supplierID,
		ModelID:     w.model.ID,
		SupplyType:  w.supplyType,
		Areas:       append([]RequestingArea(nil), w.model.Areas...),
		Answers:     w.answers.Snapshot(w.model),
		SubmittedAt: time.Now().UTC(),
		FinalScore:  ProvisionalScore(w.model, w.answers),
	}, nil
}
