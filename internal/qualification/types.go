package qualification

import (
	"time"

	"github.com/google/uuid"
)

// SupplyType classifies what a supplier provides.
type SupplyType string

const (
	SupplyProduct          SupplyType = "product"
	SupplyService          SupplyType = "service"
	SupplyRecurringService SupplyType = "recurring_service"
	SupplyMixed            SupplyType = "mixed"
)

func (t SupplyType) Valid() bool {
	switch t {
	case SupplyProduct, SupplyService, SupplyRecurringService, SupplyMixed:
		return true
	}
	return false
}

func (t SupplyType) Label() string {
	switch t {
	case SupplyProduct:
		return "Produto"
	case SupplyService:
		return "Serviço"
	case SupplyRecurringService:
		return "Serviço Recorrente"
	case SupplyMixed:
		return "Misto"
	}
	return string(t)
}

// RequestingArea is an internal department that can attach its own
// qualification criteria.
type RequestingArea string

const (
	AreaEngineering RequestingArea = "engineering"
	AreaPurchasing  RequestingArea = "purchasing"
	AreaSupply      RequestingArea = "supply"
	AreaFinance     RequestingArea = "finance"
	AreaLogistics   RequestingArea = "logistics"
	AreaLegal       RequestingArea = "legal"
	AreaQuality     RequestingArea = "quality"
	AreaOther       RequestingArea = "other"
)

// AllAreas fixes the iteration order used when assembling area-specific
// sections, so the section order never depends on caller input order.
var AllAreas = []RequestingArea{
	AreaEngineering,
	AreaPurchasing,
	AreaSupply,
	AreaFinance,
	AreaLogistics,
	AreaLegal,
	AreaQuality,
	AreaOther,
}

func (a RequestingArea) Valid() bool {
	for _, known := range AllAreas {
		if a == known {
			return true
		}
	}
	return false
}

// Status is a supplier's qualification status.
type Status string

const (
	StatusQualified          Status = "qualified"
	StatusPreferred          Status = "preferred"
	StatusAwaitingCompletion Status = "awaiting_completion"
	StatusPendingWithCaveats Status = "pending_with_caveats"
	StatusAwaitingUpdate     Status = "awaiting_update"
	StatusInQualification    Status = "in_qualification"
	StatusNotQualified       Status = "not_qualified"
)

// AnswerType is how a question is answered.
type AnswerType string

const (
	AnswerText     AnswerType = "text"
	AnswerOptions  AnswerType = "options"
	AnswerBoolean  AnswerType = "boolean"
	AnswerCheckbox AnswerType = "checkbox"
	AnswerNumber   AnswerType = "number"
	AnswerDate     AnswerType = "date"
	AnswerUpload   AnswerType = "upload"
)

type Question struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	AnswerType   AnswerType `json:"answer_type"`
	Required     bool       `json:"required"`
	Options      []string   `json:"options,omitempty"`
	MaxScore     int        `json:"max_score,omitempty"`
	AllowsUpload bool       `json:"allows_upload,omitempty"`
	DocumentType string     `json:"document_type,omitempty"`
}

type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// Model is a generated questionnaire: a fixed ordered section list for one
// (supply type, areas) combination. Immutable after Build.
type Model struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	SupplyType SupplyType       `json:"supply_type"`
	Areas      []RequestingArea `json:"areas"`
	Sections   []Section        `json:"sections"`
	Version    int              `json:"version"`
	MinScore   int              `json:"min_score"`
	CreatedAt  time.Time        `json:"created_at"`
}

// RequiredQuestionIDs returns the ids of required questions in section order.
func (m *Model) RequiredQuestionIDs() []string {
	var ids []string
	for _, s := range m.Sections {
		for _, q := range s.Questions {
			if q.Required {
				ids = append(ids, q.ID)
			}
		}
	}
	return ids
}

// QuestionIDs returns the set of all question ids in the model.
func (m *Model) QuestionIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, s := range m.Sections {
		for _, q := range s.Questions {
			ids[q.ID] = struct{}{}
		}
	}
	return ids
}

// TotalMaxScore sums MaxScore across all questions.
func (m *Model) TotalMaxScore() int {
	total := 0
	for _, s := range m.Sections {
		for _, q := range s.Questions {
			total += q.MaxScore
		}
	}
	return total
}

// Record is the submission payload assembled at the end of a wizard run.
type Record struct {
	SupplierID  uuid.UUID        `json:"supplier_id"`
	ModelID     uuid.UUID        `json:"model_id"`
	SupplyType  SupplyType       `json:"supply_type"`
	Areas       []RequestingArea `json:"areas"`
	Answers     []Answer         `json:"answers"`
	SubmittedAt time.Time        `json:"submitted_at"`
	FinalScore  int              `json:"final_score"`
}
