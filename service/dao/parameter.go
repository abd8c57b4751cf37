package dao

// ProcessIDParameter restricts a listing to one process string id
const ProcessIDParameter = "ProcessID"

type Parameter struct {
	Name  string
	Value interface{}
}

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// WithProcessID returns a ProcessID listing parameter
func WithProcessID(processIDs ...string) *Parameter {
	return NewParameter(ProcessIDParameter, processIDs...)
}
