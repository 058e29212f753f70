package factory

import (
	fab "github.com/Goldziher/fabricator"

	"todolist/internal/core/domain"
)

// NewTodo builds a todo with valid status and priority; fabricator's faker
// defaults would not satisfy either enum. Defaults and caller overrides are
// merged into the single map Build honors.
func NewTodo(customData ...map[string]any) domain.Todo {
	data := mergeCustomData(customData)

	if _, exists := data["Status"]; !exists {
		data["Status"] = domain.StatusNotStarted
	}

	if _, exists := data["Priority"]; !exists {
		data["Priority"] = domain.PriorityMedium
	}

	if _, exists := data["ImageRef"]; !exists {
		data["ImageRef"] = ""
	}

	return fab.New(domain.Todo{}).Build(data)
}
