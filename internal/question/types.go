package question

// Question is one immutable unit of work produced by expanding a Set.
type Question struct {
	Template     string
	Bindings     map[string]string
	RenderedText string
	ID           string
}

// New builds a Question from a template, bindings, and schema id. The
// bindings map is copied so later mutation by the caller cannot change the
// question or its id.
func New(template string, bindings map[string]string, schemaID string) (Question, error) {
	rendered, err := Render(template, bindings)
	if err != nil {
		return Question{}, err
	}
	copied := make(map[string]string, len(bindings))
	for name, value := range bindings {
		copied[name] = value
	}
	return Question{
		Template:     template,
		Bindings:     copied,
		RenderedText: rendered,
		ID:           Identity(template, copied, schemaID),
	}, nil
}

// WordSet names an ordered list of candidate values for one placeholder.
type WordSet struct {
	Name   string
	Values []string
}
