package services

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports buyer or form input that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// EventPublisher publishes order lifecycle events to the broker.
type EventPublisher interface {
	PublishOrderEvent(routingKey string, payload interface{}) error
}
