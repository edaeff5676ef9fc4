package qualification

// Presentation is the display metadata for a qualification status. The UI
// renders these verbatim; colors are utility classes.
type Presentation struct {
	Status     Status `json:"status"`
	Icon       string `json:"icon"`
	Label      string `json:"label"`
	ColorClass string `json:"color_class"`
}

var defaultPresentation = Presentation{
	Status:     StatusNotQualified,
	Icon:       "x-circle",
	Label:      "Não Qualificado",
	ColorClass: "text-red-600",
}

var presentations = map[Status]Presentation{
	StatusQualified:          {StatusQualified, "check-circle", "Qualificado", "text-green-600"},
	StatusPreferred:          {StatusPreferred, "star", "Preferencial", "text-emerald-600"},
	StatusAwaitingCompletion: {StatusAwaitingCompletion, "clock", "Aguardando Complemento", "text-yellow-600"},
	StatusPendingWithCaveats: {StatusPendingWithCaveats, "alert-triangle", "Pendente com Ressalvas", "text-amber-600"},
	StatusAwaitingUpdate:     {StatusAwaitingUpdate, "refresh-cw", "Aguardando Atualização", "text-blue-600"},
	StatusInQualification:    {StatusInQualification, "loader", "Em Qualificação", "text-indigo-600"},
	StatusNotQualified:       defaultPresentation,
}

// PresentationFor is total: any unmapped status falls through to the
// "Não Qualificado" default instead of erroring.
func PresentationFor(status Status) Presentation {
	if p, ok := presentations[status]; ok {
		return p
	}
	return defaultPresentation
}

// AllPresentations returns the presentation metadata for every known
// status, in a stable order.
func AllPresentations() []Presentation {
	ordered := []Status{
		StatusQualified,
		StatusPreferred,
		StatusAwaitingCompletion,
		StatusPendingWithCaveats,
		StatusAwaitingUpdate,
		StatusInQualification,
		StatusNotQualified,
	}
	out := make([]Presentation, 0, len(ordered))
	for _, s := range ordered {
		out = append(out, presentations[s])
	}
	return out
}
