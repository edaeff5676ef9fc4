package qualification

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The questionnaire content lives in a catalog of section templates. The
// built-in catalog mirrors the standard SourceXpress questionnaire; a YAML
// file can replace it wholesale for deployments with their own criteria.

type QuestionTemplate struct {
	Text         string     `yaml:"text"`
	AnswerType   AnswerType `yaml:"answer_type"`
	Required     bool       `yaml:"required"`
	Options      []string   `yaml:"options,omitempty"`
	MaxScore     int        `yaml:"max_score"`
	AllowsUpload bool       `yaml:"allows_upload,omitempty"`
	DocumentType string     `yaml:"document_type,omitempty"`
}

type SectionTemplate struct {
	Key         string             `yaml:"key"`
	Title       string             `yaml:"title"`
	Description string             `yaml:"description,omitempty"`
	Questions   []QuestionTemplate `yaml:"questions"`
}

type Catalog struct {
	Version        int                                `yaml:"version"`
	MinScore       int                                `yaml:"min_score"`
	General        SectionTemplate                    `yaml:"general"`
	Product        SectionTemplate                    `yaml:"product"`
	Service        SectionTemplate                    `yaml:"service"`
	Areas          map[RequestingArea]SectionTemplate `yaml:"areas"`
	Sustainability SectionTemplate                    `yaml:"sustainability"`
}

// DefaultCatalog returns the built-in questionnaire catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Version:  1,
		MinScore: 70,
		General: SectionTemplate{
			Key:         "informacoes-gerais",
			Title:       "Informações Gerais",
			Description: "Dados gerais sobre a operação da empresa.",
			Questions: []QuestionTemplate{
				{Text: "A empresa possui todas as licenças e alvarás exigidos para operação?", AnswerType: AnswerBoolean, Required: true, MaxScore: 10},
				{Text: "A empresa possui processos judiciais ou administrativos relevantes em andamento?", AnswerType: AnswerBoolean, Required: true, MaxScore: 5},
				{Text: "Qual a abrangência geográfica de atendimento?", AnswerType: AnswerOptions, Required: true, Options: []string{"Municipal", "Estadual", "Regional", "Nacional", "Internacional"}, MaxScore: 5},
			},
		},
		Product: SectionTemplate{
			Key:         "qualidade-produto",
			Title:       "Qualidade do Produto",
			Description: "Critérios aplicáveis a fornecedores de produtos.",
			Questions: []QuestionTemplate{
				{Text: "Quais certificações de produto a empresa possui (ISO 9001, INMETRO, etc.)?", AnswerType: AnswerText, Required: true, MaxScore: 15, AllowsUpload: true, DocumentType: "certificacao-produto"},
				{Text: "Qual o prazo de garantia padrão dos produtos fornecidos?", AnswerType: AnswerText, Required: true, MaxScore: 10},
				{Text: "Existe rastreabilidade de lote para os produtos?", AnswerType: AnswerBoolean, Required: true, MaxScore: 10},
				{Text: "Os produtos acompanham manual técnico em português?", AnswerType: AnswerBoolean, Required: false, MaxScore: 5},
			},
		},
		Service: SectionTemplate{
			Key:         "qualidade-servico",
			Title:       "Qualidade do Serviço",
			Description: "Critérios aplicáveis a fornecedores de serviços.",
			Questions: []QuestionTemplate{
				{Text: "A empresa trabalha com acordo de nível de serviço (SLA) formalizado?", AnswerType: AnswerBoolean, Required: true, MaxScore: 10},
				{Text: "Descreva o plano de contingência para indisponibilidade da equipe.", AnswerType: AnswerText, Required: true, MaxScore: 10},
				{Text: "Quais certificações técnicas a equipe possui?", AnswerType: AnswerText, Required: false, MaxScore: 10, AllowsUpload: true, DocumentType: "certificacao-tecnica"},
			},
		},
		Areas: map[RequestingArea]SectionTemplate{
			AreaEngineering: {
				Key:   "requisitos-engenharia",
				Title: "Requisitos de Engenharia",
				Questions: []QuestionTemplate{
					{Text: "A empresa atende projetos com especificações customizadas?", AnswerType: AnswerBoolean, Required: true, MaxScore: 10},
					{Text: "Que documentação técnica acompanha os fornecimentos (datasheets, memoriais, desenhos)?", AnswerType: AnswerText, Required: true, MaxScore: 10},
				},
			},
			AreaFinance: {
				Key:   "requisitos-financeiros",
				Title: "Requisitos Financeiros",
				Questions: []QuestionTemplate{
					{Text: "Quais condições de pagamento a empresa aceita?", AnswerType: AnswerCheckbox, Required: true, Options: []string{"À vista", "30 dias", "30/60 dias", "30/60/90 dias"}, MaxScore: 5},
					{Text: "A empresa pode apresentar balanço patrimonial dos últimos dois exercícios?", AnswerType: AnswerBoolean, Required: true, MaxScore: 10, AllowsUpload: true, DocumentType: "balanco-patrimonial"},
				},
			},
			AreaLegal: {
				Key:   "requisitos-juridicos",
				Title: "Requisitos Jurídicos",
				Questions: []QuestionTemplate{
					{Text: "A empresa aceita contratar pelo modelo padrão de contrato da contratante?", AnswerType: AnswerBoolean, Required: true, MaxScore: 5},
					{Text: "A empresa está adequada à LGPD?", AnswerType: AnswerBoolean, Required: true, MaxScore: 10},
					{Text: "Indique o responsável (DPO) pelo tratamento de dados pessoais.", AnswerType: AnswerText, Required: false, MaxScore: 5},
				},
			},
		},
		Sustainability: SectionTemplate{
			Key:         "sustentabilidade-compliance",
			Title:       "Sustentabilidade e Compliance",
			Description: "Critérios socioambientais e de conduta, aplicáveis a todos os fornecedores.",
			Questions: []QuestionTemplate{
				{Text: "A empresa possui política formal de sustentabilidade?", AnswerType: AnswerBoolean, Required: true, MaxScore: 10, AllowsUpload: true, DocumentType: "politica-sustentabilidade"},
				{Text: "Quais certificações ambientais a empresa possui?", AnswerType: AnswerCheckbox, Required: true, Options: []string{"ISO 14001", "FSC", "Carbono Neutro", "Nenhuma"}, MaxScore: 5},
				{Text: "A empresa adere ao código de conduta de fornecedores?", AnswerType: AnswerBoolean, Required: true, MaxScore: 10},
			},
		},
	}
}

// LoadCatalog reads a catalog from a YAML file. The file replaces the
// built-in catalog entirely, so general and sustainability must be present.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) validate() error {
	if c.General.Key == "" || len(c.General.Questions) == 0 {
		return fmt.Errorf("catalog: general section missing or empty")
	}
	if c.Sustainability.Key == "" || len(c.Sustainability.Questions) == 0 {
		return fmt.Errorf("catalog: sustainability section missing or empty")
	}
	for area := range c.Areas {
		if !area.Valid() {
			return fmt.Errorf("catalog: unknown requesting area %q", area)
		}
	}
	if c.Version <= 0 {
		c.Version = 1
	}
	return nil
}
