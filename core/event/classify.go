package event

// classifierRule pairs a predicate with the category it yields. Rules are
// tried in order; the first match wins.
type classifierRule func(Event) (Category, bool)

// Precedence: an explicit recognized label beats type-based inference, and an
// event matching no rule is invisible to the standing engine.
var classifierRules = []classifierRule{
	func(e Event) (Category, bool) { return e.Category, e.Category.Recognized() },
	func(e Event) (Category, bool) { return CategoryGeneralConference, e.Type == TypeChapter },
	func(e Event) (Category, bool) { return CategoryCommitteeMeeting, e.Type == TypeMeeting && e.CommitteeID.Valid },
}

// Classify assigns an event to at most one requirement category.
func Classify(e Event) (Category, bool) {
	for _, rule := range classifierRules {
		if cat, ok := rule(e); ok {
			return cat, true
		}
	}
	return "", false
}
