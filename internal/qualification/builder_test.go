package qualification

import (
	"testing"
)

func sectionTitles(m *Model) []string {
	titles := make([]string, 0, len(m.Sections))
	for _, s := range m.Sections {
		titles = append(titles, s.Title)
	}
	return titles
}

func TestBuildDeterminism(t *testing.T) {
	b := NewBuilder(nil)
	inputs := []struct {
		supply SupplyType
		areas  []RequestingArea
	}{
		{SupplyProduct, []RequestingArea{AreaFinance}},
		{SupplyService, []RequestingArea{AreaLegal, AreaEngineering}},
		{SupplyRecurringService, []RequestingArea{AreaPurchasing}},
		{SupplyMixed, []RequestingArea{AreaEngineering, AreaFinance, AreaLegal}},
	}
	for _, in := range inputs {
		m1 := b.Build(in.supply, in.areas)
		m2 := b.Build(in.supply, in.areas)
		if len(m1.Sections) != len(m2.Sections) {
			t.Fatalf("%s: section count differs: %d vs %d", in.supply, len(m1.Sections), len(m2.Sections))
		}
		for i := range m1.Sections {
			if m1.Sections[i].Title != m2.Sections[i].Title {
				t.Fatalf("%s: section %d title differs: %q vs %q", in.supply, i, m1.Sections[i].Title, m2.Sections[i].Title)
			}
			if m1.Sections[i].ID != m2.Sections[i].ID {
				t.Fatalf("%s: section %d id differs", in.supply, i)
			}
			for j := range m1.Sections[i].Questions {
				if m1.Sections[i].Questions[j].ID != m2.Sections[i].Questions[j].ID {
					t.Fatalf("%s: question id differs at section %d index %d", in.supply, i, j)
				}
			}
		}
	}
}

func TestBuildSectionOrderingInvariant(t *testing.T) {
	b := NewBuilder(nil)
	for _, supply := range []SupplyType{SupplyProduct, SupplyService, SupplyRecurringService, SupplyMixed} {
		for _, areas := range [][]RequestingArea{
			{AreaEngineering},
			{AreaFinance, AreaLegal},
			{AreaPurchasing, AreaSupply, AreaLogistics, AreaQuality, AreaOther},
		} {
			m := b.Build(supply, areas)
			if len(m.Sections) < 2 {
				t.Fatalf("%s/%v: too few sections: %d", supply, areas, len(m.Sections))
			}
			if got := m.Sections[0].Title; got != "Informações Gerais" {
				t.Fatalf("%s/%v: first section = %q", supply, areas, got)
			}
			if got := m.Sections[len(m.Sections)-1].Title; got != "Sustentabilidade e Compliance" {
				t.Fatalf("%s/%v: last section = %q", supply, areas, got)
			}
		}
	}
}

func TestBuildAreaMapping(t *testing.T) {
	b := NewBuilder(nil)

	m := b.Build(SupplyService, []RequestingArea{AreaEngineering, AreaFinance, AreaLegal})
	// general + service + 3 areas + sustainability
	if len(m.Sections) != 6 {
		t.Fatalf("expected 6 sections, got %d: %v", len(m.Sections), sectionTitles(m))
	}
	for _, want := range []string{"Requisitos de Engenharia", "Requisitos Financeiros", "Requisitos Jurídicos"} {
		found := false
		for _, s := range m.Sections {
			if s.Title == want {
				found = true
				if len(s.Questions) == 0 {
					t.Fatalf("area section %q has no questions", want)
				}
			}
		}
		if !found {
			t.Fatalf("missing area section %q in %v", want, sectionTitles(m))
		}
	}

	// Areas without a catalog entry contribute nothing, silently.
	m = b.Build(SupplyService, []RequestingArea{AreaPurchasing})
	if len(m.Sections) != 3 {
		t.Fatalf("purchasing-only: expected 3 sections, got %d: %v", len(m.Sections), sectionTitles(m))
	}
}

func TestBuildAreaOrderIndependentOfInput(t *testing.T) {
	b := NewBuilder(nil)
	m1 := b.Build(SupplyProduct, []RequestingArea{AreaLegal, AreaEngineering, AreaFinance})
	m2 := b.Build(SupplyProduct, []RequestingArea{AreaFinance, AreaLegal, AreaEngineering})
	t1 := sectionTitles(m1)
	t2 := sectionTitles(m2)
	if len(t1) != len(t2) {
		t.Fatalf("section counts differ: %v vs %v", t1, t2)
	}
	for i := range t1 {
		if t1[i] != t2[i] {
			t.Fatalf("ordering depends on input order: %v vs %v", t1, t2)
		}
	}
}

func TestBuildMixedGetsBothTypeSections(t *testing.T) {
	b := NewBuilder(nil)
	m := b.Build(SupplyMixed, []RequestingArea{AreaOther})
	titles := sectionTitles(m)
	want := []string{"Informações Gerais", "Qualidade do Produto", "Qualidade do Serviço", "Sustentabilidade e Compliance"}
	if len(titles) != len(want) {
		t.Fatalf("mixed: got %v", titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("mixed: got %v, want %v", titles, want)
		}
	}
}

func TestProvisionalScore(t *testing.T) {
	b := NewBuilder(nil)
	m := b.Build(SupplyProduct, []RequestingArea{AreaFinance})

	answers := NewAnswerStore()
	if got := ProvisionalScore(m, answers); got != 0 {
		t.Fatalf("empty store score = %d", got)
	}

	total := 0
	for _, s := range m.Sections {
		for _, q := range s.Questions {
			answers.Set(q.ID, BoolValue(true))
			total += q.MaxScore
		}
	}
	if got := ProvisionalScore(m, answers); got != total {
		t.Fatalf("full score = %d, want %d", got, total)
	}

	// Empty answers earn nothing.
	q := m.Sections[0].Questions[0]
	answers.Set(q.ID, TextValue("   "))
	if got := ProvisionalScore(m, answers); got != total-q.MaxScore {
		t.Fatalf("score after blanking = %d, want %d", got, total-q.MaxScore)
	}
}
