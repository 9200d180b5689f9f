package dashboard

// State is the explicit UI state: which trade, if any, is being edited and
// whether the add form is showing. Transitions return a new State.
type State struct {
	EditingID   string
	AddFormOpen bool
}

// Editing reports whether an edit form is open.
func (s State) Editing() bool { return s.EditingID != "" }

// StartEdit opens the edit form for id and closes the add form.
func (s State) StartEdit(id string) State {
	return State{EditingID: id}
}

func (s State) CancelEdit() State {
	s.EditingID = ""
	return s
}

func (s State) ToggleAdd() State {
	s.AddFormOpen = !s.AddFormOpen
	return s
}

// Saved closes whichever form was submitted.
func (s State) Saved() State {
	return State{}
}
