package flashcard

// View is the read-only projection of a State consumed by the presentation
// layer. It is recomputed from the State on every read and never stored.
type View struct {
	Phase              Phase
	IsLoading          bool
	ErrorMessage       string
	Cards              []Card
	ShowResultsHeading bool
}

// HasError reports whether an error message should be displayed.
func (v View) HasError() bool {
	return v.ErrorMessage != ""
}

// Project derives the View for s.
func Project(s State) View {
	if s == nil {
		s = Idle{}
	}
	v := View{Phase: s.Phase()}
	switch st := s.(type) {
	case InFlight:
		v.IsLoading = true
	case Success:
		v.Cards = st.Cards()
		v.ShowResultsHeading = true
	case Empty:
		v.ErrorMessage = MessageNoFlashcards
	case Failed:
		v.ErrorMessage = st.Message
		if v.ErrorMessage == "" {
			v.ErrorMessage = MessageUnexpected
		}
	}
	return v
}
