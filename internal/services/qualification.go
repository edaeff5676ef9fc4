package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

// sessionTTL bounds how long an abandoned wizard run stays in memory.
const sessionTTL = 4 * time.Hour

// SessionView is the wizard state handed to the frontend after every
// operation.
type SessionView struct {
	SessionID  uuid.UUID                      `json:"session_id"`
	SupplierID uuid.UUID                      `json:"supplier_id"`
	Stage      qualification.Stage            `json:"stage"`
	SupplyType qualification.SupplyType       `json:"supply_type,omitempty"`
	Areas      []qualification.RequestingArea `json:"areas,omitempty"`
	Model      *qualification.Model           `json:"model,omitempty"`
	Answers    []qualification.Answer         `json:"answers,omitempty"`
	Missing    []string                       `json:"missing,omitempty"`
	Complete   bool                           `json:"complete"`
}

type QualificationService interface {
	StartSession(ctx context.Context, supplierID uuid.UUID) (*SessionView, error)
	Session(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)
	SelectScope(ctx context.Context, sessionID uuid.UUID, supplyType qualification.SupplyType, areas []qualification.RequestingArea) (*SessionView, error)
	SetAnswer(ctx context.Context, sessionID uuid.UUID, questionID string, value any) (*SessionView, error)
	Advance(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)
	Back(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)
	Submit(ctx context.Context, sessionID uuid.UUID) (*types.QualificationRecord, error)

	Preview(supplyType qualification.SupplyType, areas []qualification.RequestingArea) (*qualification.Model, error)
	Records(ctx context.Context, supplierID uuid.UUID) ([]*types.QualificationRecord, error)
	Models(ctx context.Context, supplyType qualification.SupplyType) ([]*types.QuestionnaireModel, error)
	Model(ctx context.Context, modelID uuid.UUID) (*types.QuestionnaireModel, error)
	StatusPresentations() []qualification.Presentation
}

type wizardSession struct {
	id         uuid.UUID
	supplierID uuid.UUID
	wizard     *qualification.Wizard
	touchedAt  time.Time

	// mu serializes access to the wizard; the service-level mutex only
	// guards the sessions map, and two requests for the same session
	// otherwise race on the answer store.
	mu sync.Mutex
}

type qualificationService struct {
	db           *gorm.DB
	log          *logger.Logger
	builder      *qualification.Builder
	supplierRepo repos.SupplierRepo
	modelRepo    repos.QuestionnaireModelRepo
	recordRepo   repos.QualificationRecordRepo
	notifier     Notifier

	mu       sync.Mutex
	sessions map[uuid.UUID]*wizardSession
}

func NewQualificationService(
	db *gorm.DB,
	log *logger.Logger,
	builder *qualification.Builder,
	supplierRepo repos.SupplierRepo,
	modelRepo repos.QuestionnaireModelRepo,
	recordRepo repos.QualificationRecordRepo,
	notifier Notifier,
) QualificationService {
	if builder == nil {
		builder = qualification.NewBuilder(nil)
	}
	return &qualificationService{
		db:           db,
		log:          log.With("service", "QualificationService"),
		builder:      builder,
		supplierRepo: supplierRepo,
		modelRepo:    modelRepo,
		recordRepo:   recordRepo,
		notifier:     notifier,
		sessions:     make(map[uuid.UUID]*wizardSession),
	}
}

func (qs *qualificationService) StartSession(ctx context.Context, supplierID uuid.UUID) (*SessionView, error) {
	rows, err := qs.supplierRepo.GetByIDs(ctx, nil, []uuid.UUID{supplierID})
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}

	session := &wizardSession{
		id:         uuid.New(),
		supplierID: supplierID,
		wizard:     qualification.NewWizard(qs.builder),
		touchedAt:  time.Now(),
	}

	qs.mu.Lock()
	qs.pruneLocked()
	qs.sessions[session.id] = session
	qs.mu.Unlock()

	session.mu.Lock()
	defer session.mu.Unlock()
	qs.log.Info("qualification session started", "session_id", session.id, "supplier_id", supplierID)
	return qs.view(session), nil
}

func (qs *qualificationService) Session(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	session, err := qs.get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return qs.view(session), nil
}

func (qs *qualificationService) SelectScope(ctx context.Context, sessionID uuid.UUID, supplyType qualification.SupplyType, areas []qualification.RequestingArea) (*SessionView, error) {
	session, err := qs.get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := session.wizard.SelectScope(supplyType, areas); err != nil {
		return nil, apperrors.Invalid(err.Error())
	}
	return qs.view(session), nil
}

func (qs *qualificationService) SetAnswer(ctx context.Context, sessionID uuid.UUID, questionID string, value any) (*SessionView, error) {
	session, err := qs.get(sessionID)
	if err != nil {
		return nil, err
	}
	parsed, err := qualification.ParseValue(value)
	if err != nil {
		return nil, apperrors.Invalid(err.Error())
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := session.wizard.SetAnswer(questionID, parsed); err != nil {
		return nil, apperrors.Invalid(err.Error())
	}
	return qs.view(session), nil
}

func (qs *qualificationService) Advance(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	session, err := qs.get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := session.wizard.Advance(); err != nil {
		return nil, err
	}
	return qs.view(session), nil
}

func (qs *qualificationService) Back(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	session, err := qs.get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := session.wizard.Back(); err != nil {
		return nil, apperrors.Invalid(err.Error())
	}
	return qs.view(session), nil
}

// Submit persists the model and the record in one transaction, moves the
// supplier to analysis, and only then discards the session. A failed
// transaction keeps the session intact so the user can retry.
func (qs *qualificationService) Submit(ctx context.Context, sessionID uuid.UUID) (*types.QualificationRecord, error) {
	session, err := qs.get(sessionID)
	if err != nil {
		return nil, err
	}

	// Snapshot the wizard under the session lock; the DB transaction below
	// works off the snapshot and does not need it.
	session.mu.Lock()
	record, err := session.wizard.BuildRecord(session.supplierID)
	if err != nil {
		session.mu.Unlock()
		return nil, apperrors.Invalid(err.Error())
	}
	modelRow, recordRow, err := qs.rows(session.wizard.Model(), record)
	session.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := qs.modelRepo.Create(ctx, tx, []*types.QuestionnaireModel{modelRow}); err != nil {
			return fmt.Errorf("persist questionnaire model: %w", err)
		}
		if _, err := qs.recordRepo.Create(ctx, tx, []*types.QualificationRecord{recordRow}); err != nil {
			return fmt.Errorf("persist qualification record: %w", err)
		}
		if err := qs.supplierRepo.UpdateStatus(ctx, tx, session.supplierID, qualification.StatusInQualification); err != nil {
			return fmt.Errorf("update supplier status: %w", err)
		}
		return nil
	}); err != nil {
		return nil, apperrors.Classify(err)
	}

	qs.mu.Lock()
	delete(qs.sessions, sessionID)
	qs.mu.Unlock()

	qs.notifier.QualificationSubmitted(ctx, session.supplierID, recordRow.ID, recordRow.FinalScore)
	qs.notifier.SupplierStatusChanged(ctx, session.supplierID, qualification.StatusInQualification)
	qs.log.Info("qualification submitted",
		"session_id", sessionID,
		"supplier_id", session.supplierID,
		"record_id", recordRow.ID,
		"score", recordRow.FinalScore,
	)
	return recordRow, nil
}

func (qs *qualificationService) Preview(supplyType qualification.SupplyType, areas []qualification.RequestingArea) (*qualification.Model, error) {
	if !supplyType.Valid() {
		return nil, apperrors.Invalid(fmt.Sprintf("unknown supply type %q", supplyType))
	}
	for _, a := range areas {
		if !a.Valid() {
			return nil, apperrors.Invalid(fmt.Sprintf("unknown area %q", a))
		}
	}
	if len(areas) == 0 {
		return nil, apperrors.Invalid("at least one requesting area required")
	}
	return qs.builder.Build(supplyType, areas), nil
}

func (qs *qualificationService) Records(ctx context.Context, supplierID uuid.UUID) ([]*types.QualificationRecord, error) {
	return qs.recordRepo.GetBySupplierIDs(ctx, nil, []uuid.UUID{supplierID})
}

func (qs *qualificationService) Models(ctx context.Context, supplyType qualification.SupplyType) ([]*types.QuestionnaireModel, error) {
	if !supplyType.Valid() {
		return nil, apperrors.Invalid("unknown supply type")
	}
	return qs.modelRepo.ListBySupplyType(ctx, nil, supplyType)
}

func (qs *qualificationService) Model(ctx context.Context, modelID uuid.UUID) (*types.QuestionnaireModel, error) {
	rows, err := qs.modelRepo.GetByIDs(ctx, nil, []uuid.UUID{modelID})
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return rows[0], nil
}

func (qs *qualificationService) StatusPresentations() []qualification.Presentation {
	return qualification.AllPresentations()
}

func (qs *qualificationService) get(sessionID uuid.UUID) (*wizardSession, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	session, ok := qs.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	session.touchedAt = time.Now()
	return session, nil
}

// pruneLocked drops sessions idle past the TTL. Callers hold qs.mu.
func (qs *qualificationService) pruneLocked() {
	cutoff := time.Now().Add(-sessionTTL)
	for id, s := range qs.sessions {
		if s.touchedAt.Before(cutoff) {
			delete(qs.sessions, id)
		}
	}
}

func (qs *qualificationService) view(session *wizardSession) *SessionView {
	w := session.wizard
	view := &SessionView{
		SessionID:  session.id,
		SupplierID: session.supplierID,
		Stage:      w.Stage(),
	}
	if model := w.Model(); model != nil {
		view.SupplyType = w.SupplyType()
		view.Areas = w.Areas()
		view.Model = model
		view.Answers = w.Answers().Snapshot(model)
		complete, missing := w.CanAdvance()
		view.Complete = complete || w.Stage() == qualification.StageReview
		view.Missing = missing
	}
	return view
}

func (qs *qualificationService) rows(model *qualification.Model, record *qualification.Record) (*types.QuestionnaireModel, *types.QualificationRecord, error) {
	sections, err := json.Marshal(model.Sections)
	if err != nil {
		return nil, nil, fmt.Errorf("encode sections: %w", err)
	}
	areas, err := json.Marshal(model.Areas)
	if err != nil {
		return nil, nil, fmt.Errorf("encode areas: %w", err)
	}
	answers, err := json.Marshal(record.Answers)
	if err != nil {
		return nil, nil, fmt.Errorf("encode answers: %w", err)
	}

	modelRow := &types.QuestionnaireModel{
		ID:         model.ID,
		Name:       model.Name,
		SupplyType: model.SupplyType,
		Areas:      datatypes.JSON(areas),
		Sections:   datatypes.JSON(sections),
		Version:    model.Version,
		MinScore:   model.MinScore,
		CreatedAt:  model.CreatedAt,
	}
	recordRow := &types.QualificationRecord{
		ID:          uuid.New(),
		SupplierID:  record.SupplierID,
		ModelID:     record.ModelID,
		SupplyType:  record.SupplyType,
		Areas:       datatypes.JSON(areas),
		Answers:     datatypes.JSON(answers),
		FinalScore:  record.FinalScore,
		SubmittedAt: record.SubmittedAt,
	}
	return modelRow, recordRow, nil
}
