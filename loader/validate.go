package loader

import (
	"fmt"
	"strings"
)

// ValidationError collects all problems found in a rules file.
// Warnings alone never fail a load.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Fields a Rules table may declare.
var knownTopLevel = map[string]bool{
	"shells": true,
	"hp":     true,
	"items":  true,
	"seed":   true,
	"log":    true,
}
