package qualification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	core "github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

// QuestionnaireModel is the persisted form of a generated questionnaire.
// Sections and areas are stored as JSON; the row id matches the generated
// model id so records can reference the exact structure they answered.
type QuestionnaireModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string          `gorm:"not null;column:name" json:"name"`
	SupplyType core.SupplyType `gorm:"not null;column:supply_type" json:"supply_type"`
	Areas      datatypes.JSON  `gorm:"column:areas" json:"areas"`
	Sections   datatypes.JSON  `gorm:"not null;column:sections" json:"sections"`
	Version    int             `gorm:"not null;default:1;column:version" json:"version"`
	MinScore   int             `gorm:"not null;default:0;column:min_score" json:"min_score"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
}

func (QuestionnaireModel) TableName() string { return "questionnaire_models" }

// QualificationRecord is a completed wizard run: one supplier's answers
// against one questionnaire model, with the provisional score recorded at
// submission.
type QualificationRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SupplierID  uuid.UUID       `gorm:"type:uuid;index;not null;column:supplier_id" json:"supplier_id"`
	ModelID     uuid.UUID       `gorm:"type:uuid;index;not null;column:model_id" json:"model_id"`
	SupplyType  core.SupplyType `gorm:"not null;column:supply_type" json:"supply_type"`
	Areas       datatypes.JSON  `gorm:"column:areas" json:"areas"`
	Answers     datatypes.JSON  `gorm:"not null;column:answers" json:"answers"`
	FinalScore  int             `gorm:"not null;default:0;column:final_score" json:"final_score"`
	SubmittedAt time.Time       `gorm:"not null;column:submitted_at" json:"submitted_at"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}

func (QualificationRecord) TableName() string { return "qualification_records" }
