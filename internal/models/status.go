package models

import "strings"

// Title keywords per status, checked in order. Lists are named freely by
// users, in Spanish or English.
var statusKeywords = []struct {
	status   Status
	keywords []string
}{
	// No bare "todo": in Spanish it means "all" ("Todo terminado").
	{StatusTodo, []string{"por hacer", "pendiente", "to do", "to-do"}},
	{StatusDoing, []string{"proceso", "curso", "doing", "progress"}},
	{StatusDone, []string{"hecho", "termin", "complet", "finaliz", "done"}},
}

// StatusForTitle normalizes a list title to a status category.
func StatusForTitle(title string) Status {
	text := strings.ToLower(title)
	for _, sk := range statusKeywords {
		for _, kw := range sk.keywords {
			if strings.Contains(text, kw) {
				return sk.status
			}
		}
	}
	return StatusOther
}

// StatusLabel returns the display label for a column, falling back to its title.
func StatusLabel(status Status, title string) string {
	switch status {
	case StatusTodo:
		return "Por hacer"
	case StatusDoing:
		return "En proceso"
	case StatusDone:
		return "Completadas"
	}
	return title
}
