package qualification

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogValid(t *testing.T) {
	c := DefaultCatalog()
	if err := c.validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
	for area := range c.Areas {
		if !area.Valid() {
			t.Fatalf("default catalog has unknown area %q", area)
		}
	}
}

func TestLoadCatalogOverride(t *testing.T) {
	raw := `
version: 2
min_score: 50
general:
  key: geral
  title: Informações Gerais
  questions:
    - text: Possui licenças?
      answer_type: boolean
      required: true
      max_score: 10
sustainability:
  key: esg
  title: Sustentabilidade e Compliance
  questions:
    - text: Possui política ESG?
      answer_type: boolean
      required: true
      max_score: 10
areas:
  finance:
    key: fin
    title: Requisitos Financeiros
    questions:
      - text: Condições de pagamento?
        answer_type: text
        required: true
        max_score: 5
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if cat.Version != 2 || cat.MinScore != 50 {
		t.Fatalf("catalog header = %+v", cat)
	}

	m := NewBuilder(cat).Build(SupplyProduct, []RequestingArea{AreaFinance})
	titles := sectionTitles(m)
	// The override omits the product slot, so only general + finance +
	// sustainability remain.
	want := []string{"Informações Gerais", "Requisitos Financeiros", "Sustentabilidade e Compliance"}
	if len(titles) != len(want) {
		t.Fatalf("override sections = %v", titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("override sections = %v, want %v", titles, want)
		}
	}
	if m.Version != 2 || m.MinScore != 50 {
		t.Fatalf("model did not take catalog version/min score: %+v", m)
	}
}

func TestLoadCatalogRejectsIncomplete(t *testing.T) {
	raw := `
general:
  key: geral
  title: Informações Gerais
  questions:
    - text: Possui licenças?
      answer_type: boolean
      required: true
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatalf("catalog without sustainability accepted")
	}
}

func TestLoadCatalogRejectsUnknownArea(t *testing.T) {
	raw := `
general:
  key: geral
  title: Informações Gerais
  questions:
    - {text: Q, answer_type: boolean, required: true}
sustainability:
  key: esg
  title: Sustentabilidade e Compliance
  questions:
    - {text: Q, answer_type: boolean, required: true}
areas:
  marketing:
    key: mkt
    title: Marketing
    questions:
      - {text: Q, answer_type: text, required: false}
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatalf("catalog with unknown area accepted")
	}
}
