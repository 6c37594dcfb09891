package service

import (
	"strings"

	"github.com/abdhfz93/sipdesk/models/portal"
	"github.com/abdhfz93/sipdesk/pkg/utils"
)

// mergeChecklist builds the stored checklist from a caller payload. Default
// items come first in their canonical order, taking the caller's status when
// the payload includes them and not-tested otherwise; custom items follow in
// payload order. Labels must be unique case-insensitively.
//
// The merge is idempotent: feeding its output back in reproduces it.
func mergeChecklist(items []ChecklistItemInput) (portal.Checklist, error) {
	statusByLabel := make(map[string]portal.ChecklistStatus, len(items))
	var customs []portal.ChecklistItem

	for _, item := range items {
		label := strings.TrimSpace(item.Label)
		if label == emptyString {
			return nil, NewValidationError(msgEmptyChecklistLabel)
		}
		key := strings.ToLower(label)
		if _, dup := statusByLabel[key]; dup {
			return nil, NewValidationError(msgDuplicateChecklist, label)
		}

		status := portal.ChecklistStatus(item.Status)
		if item.Status == emptyString {
			status = portal.ChecklistStatusNotTested
		} else if !status.Valid() {
			return nil, NewValidationError(msgInvalidChecklist, item.Status, label)
		}
		statusByLabel[key] = status

		if !utils.StringInSliceFold(label, portal.DefaultChecklistLabels) {
			customs = append(customs, portal.ChecklistItem{Label: label, Status: status})
		}
	}

	merged := make(portal.Checklist, 0, len(portal.DefaultChecklistLabels)+len(customs))
	for _, label := range portal.DefaultChecklistLabels {
		status, ok := statusByLabel[strings.ToLower(label)]
		if !ok {
			status = portal.ChecklistStatusNotTested
		}
		merged = append(merged, portal.ChecklistItem{Label: label, Status: status})
	}
	return append(merged, customs...), nil
}
