package presence

import "strings"

// LabelField selects which free-text field of a record a rule inspects.
type LabelField int

// Fields a classifier rule can look at, in the order sites usually encode
// direction information.
const (
	FieldEventType LabelField = iota
	FieldReader
	FieldCentral
)

// Rule matches one label field against entry- and exit-indicating tokens.
// Matching is a case-insensitive substring test; entry tokens are checked
// before exit tokens within the same field.
type Rule struct {
	Field LabelField
	Entry []string
	Exit  []string
}

// Classifier infers a scan direction from a prioritized list of rules.
// Source labels are not standardized across hardware vendors, so the
// vocabulary is data rather than code: new sites add rules, the pairing
// algorithm stays untouched.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier from explicit rules, evaluated in order.
func NewClassifier(rules ...Rule) *Classifier {
	return &Classifier{rules: rules}
}

// DefaultClassifier covers the label vocabulary seen in the supported
// exports: French reader firmware labels plus their English equivalents.
func DefaultClassifier() *Classifier {
	entry := []string{"entree", "entrée", "entry"}
	exit := []string{"sortie", "exit"}
	return NewClassifier(
		Rule{Field: FieldEventType, Entry: entry, Exit: exit},
		Rule{Field: FieldReader, Entry: entry, Exit: exit},
		Rule{Field: FieldCentral, Entry: entry, Exit: exit},
	)
}

// Classify returns the direction of a record, or DirectionUnknown when no
// rule matches. The first matching rule wins.
func (c *Classifier) Classify(rec RawRecord) Direction {
	for _, rule := range c.rules {
		label := strings.ToLower(fieldValue(rec, rule.Field))
		if label == "" {
			continue
		}
		if containsAny(label, rule.Entry) {
			return DirectionEntry
		}
		if containsAny(label, rule.Exit) {
			return DirectionExit
		}
	}
	return DirectionUnknown
}

func fieldValue(rec RawRecord, field LabelField) string {
	switch field {
	case FieldEventType:
		return rec.EventType
	case FieldReader:
		return rec.Reader
	case FieldCentral:
		return rec.Central
	}
	return ""
}

func containsAny(label string, tokens []string) bool {
	for _, token := range tokens {
		if token != "" && strings.Contains(label, strings.ToLower(token)) {
			return true
		}
	}
	return false
}
