package qualification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Builder assembles questionnaire models from the section catalog. Section
// order is always: general, type-specific, area-specific (in AllAreas
// order), sustainability last. Areas without a catalog entry contribute
// nothing; that is expected, not an error. Build never fails.
type Builder struct {
	catalog *Catalog
}

func NewBuilder(catalog *Catalog) *Builder {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Builder{catalog: catalog}
}

func (b *Builder) Build(supplyType SupplyType, areas []RequestingArea) *Model {
	selected := make(map[RequestingArea]struct{}, len(areas))
	for _, a := range areas {
		selected[a] = struct{}{}
	}

	sections := []Section{instantiate(b.catalog.General)}

	appendTemplate := func(tmpl SectionTemplate) {
		// A catalog may omit a slot entirely (empty key); that slot then
		// contributes no section.
		if tmpl.Key == "" {
			return
		}
		sections = append(sections, instantiate(tmpl))
	}

	switch supplyType {
	case SupplyProduct:
		appendTemplate(b.catalog.Product)
	case SupplyService, SupplyRecurringService:
		appendTemplate(b.catalog.Service)
	case SupplyMixed:
		appendTemplate(b.catalog.Product)
		appendTemplate(b.catalog.Service)
	}

	orderedAreas := make([]RequestingArea, 0, len(selected))
	for _, area := range AllAreas {
		if _, ok := selected[area]; !ok {
			continue
		}
		orderedAreas = append(orderedAreas, area)
		if tmpl, ok := b.catalog.Areas[area]; ok {
			appendTemplate(tmpl)
		}
	}

	sections = append(sections, instantiate(b.catalog.Sustainability))

	return &Model{
		ID:         uuid.New(),
		Name:       "Qualificação de Fornecedor - " + supplyType.Label(),
		SupplyType: supplyType,
		Areas:      orderedAreas,
		Sections:   sections,
		Version:    b.catalog.Version,
		MinScore:   b.catalog.MinScore,
		CreatedAt:  time.Now().UTC(),
	}
}

// instantiate turns a template into a concrete section. Question ids are
// slugs derived from the section key and question position, so two builds
// with the same inputs produce the same ids and answers survive a rebuild
// that keeps the question.
func instantiate(tmpl SectionTemplate) Section {
	sec := Section{
		ID:          tmpl.Key,
		Title:       tmpl.Title,
		Description: tmpl.Description,
		Questions:   make([]Question, 0, len(tmpl.Questions)),
	}
	for i, q := range tmpl.Questions {
		sec.Questions = append(sec.Questions, Question{
			ID:           fmt.Sprintf("%s-q%d", tmpl.Key, i+1),
			Text:         q.Text,
			AnswerType:   q.AnswerType,
			Required:     q.Required,
			Options:      append([]string(nil), q.Options...),
			MaxScore:     q.MaxScore,
			AllowsUpload: q.AllowsUpload,
			DocumentType: q.DocumentType,
		})
	}
	return sec
}

// ProvisionalScore stands in for the real scoring pipeline: it credits the
// full MaxScore of every answered question. Review-side weighting happens
// outside this system.
func ProvisionalScore(model *Model, answers *AnswerStore) int {
	if model == nil || answers == nil {
		return 0
	}
	score := 0
	for _, sec := range model.Sections {
		for _, q := range sec.Questions {
			if v, ok := answers.Get(q.ID); ok && !v.Empty() {
				score += q.MaxScore
			}
		}
	}
	return score
}
