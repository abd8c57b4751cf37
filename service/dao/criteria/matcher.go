package criteria

import (
	"github.com/viant/procgraph/service/dao"
)

// Match reports whether value satisfies every parameter named name; other
// parameters are ignored
func Match(name, value string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != name {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if value != actual {
				return false
			}
		case []string:
			if !contains(actual, value) {
				return false
			}
		}
	}
	return true
}

// FilterByProcessID matches the ProcessID parameter
func FilterByProcessID(processID string, parameters []*dao.Parameter) bool {
	return Match(dao.ProcessIDParameter, processID, parameters)
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
