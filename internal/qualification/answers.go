package qualification

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type ValueKind string

const (
	KindText    ValueKind = "text"
	KindList    ValueKind = "list"
	KindBoolean ValueKind = "boolean"
)

// AnswerValue is a recorded answer: a string, a string list, or a boolean.
type AnswerValue struct {
	Kind ValueKind `json:"kind"`
	Text string    `json:"text,omitempty"`
	List []string  `json:"list,omitempty"`
	Bool bool      `json:"bool,omitempty"`
}

func TextValue(s string) AnswerValue { return AnswerValue{Kind: KindText, Text: s} }
func ListValue(l []string) AnswerValue {
	return AnswerValue{Kind: KindList, List: append([]string(nil), l...)}
}
func BoolValue(b bool) AnswerValue { return AnswerValue{Kind: KindBoolean, Bool: b} }

// ParseValue converts a decoded JSON value into an AnswerValue. Strings and
// numbers become text, arrays become lists, booleans stay booleans.
func ParseValue(v any) (AnswerValue, error) {
	switch val := v.(type) {
	case string:
		return TextValue(val), nil
	case bool:
		return BoolValue(val), nil
	case float64:
		return TextValue(strconv.FormatFloat(val, 'f', -1, 64)), nil
	case []string:
		return ListValue(val), nil
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return AnswerValue{}, fmt.Errorf("list answer items must be strings, got %T", item)
			}
			items = append(items, s)
		}
		return ListValue(items), nil
	default:
		return AnswerValue{}, fmt.Errorf("unsupported answer value type %T", v)
	}
}

// Empty reports whether the value counts as unanswered. A trimmed-empty
// string and an empty list are unanswered; a boolean never is, whichever
// way it points.
func (v AnswerValue) Empty() bool {
	switch v.Kind {
	case KindText:
		return strings.TrimSpace(v.Text) == ""
	case KindList:
		return len(v.List) == 0
	case KindBoolean:
		return false
	}
	return true
}

type Answer struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
}

// AnswerStore maps question ids to recorded values. One value per question;
// setting again overwrites.
type AnswerStore struct {
	values map[string]AnswerValue
}

func NewAnswerStore() *AnswerStore {
	return &AnswerStore{values: make(map[string]AnswerValue)}
}

func (s *AnswerStore) Set(questionID string, v AnswerValue) {
	s.values[questionID] = v
}

func (s *AnswerStore) Get(questionID string) (AnswerValue, bool) {
	v, ok := s.values[questionID]
	return v, ok
}

func (s *AnswerStore) Len() int { return len(s.values) }

// Unanswered returns, in input order, the required ids with no recorded
// non-empty value.
func (s *AnswerStore) Unanswered(requiredIDs []string) []string {
	var missing []string
	for _, id := range requiredIDs {
		v, ok := s.values[id]
		if !ok || v.Empty() {
			missing = append(missing, id)
		}
	}
	return missing
}

// Prune drops answers whose question id is not in keep. Used when a scope
// change rebuilds the model and some questions no longer exist.
func (s *AnswerStore) Prune(keep map[string]struct{}) {
	for id := range s.values {
		if _, ok := keep[id]; !ok {
			delete(s.values, id)
		}
	}
}

// Snapshot returns the recorded answers. When model is non-nil the answers
// follow the model's section/question order; stray ids come last, sorted.
func (s *AnswerStore) Snapshot(model *Model) []Answer {
	var out []Answer
	seen := make(map[string]struct{})
	if model != nil {
		for _, sec := range model.Sections {
			for _, q := range sec.Questions {
				if v, ok := s.values[q.ID]; ok {
					out = append(out, Answer{QuestionID: q.ID, Value: v})
					seen[q.ID] = struct{}{}
				}
			}
		}
	}
	var rest []string
	for id := range s.values {
		if _, ok := seen[id]; !ok {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		out = append(out, Answer{QuestionID: id, Value: s.values[id]})
	}
	return out
}
