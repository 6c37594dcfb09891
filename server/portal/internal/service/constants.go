package service

const (
	emptyString = ""

	// Pagination defaults.
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100

	// Proof-of-maintenance attachment limit per record.
	MaxProofCount = 5

	// Remark free-text limit.
	MaxRemarkLength = 1000

	// imageContentTypePrefix is the accepted MIME prefix for proof uploads.
	imageContentTypePrefix = "image/"

	// timeOfDayFormat is the HH:MM layout of the maintenance window bounds.
	timeOfDayFormat = "15:04"
)

// Error message formats.
const (
	ErrRecordNotFoundMsg = "%s with id %d not found"

	msgPerformerRequired    = "must select at least one performer"
	msgInvalidStatus        = "invalid status %q"
	msgInvalidTimeOfDay     = "invalid time of day %q, expected HH:MM"
	msgEndBeforeStart       = "end time %s is before start time %s"
	msgRemarkTooLong        = "remark exceeds %d characters"
	msgTooManyProofs        = "you can only upload up to %d proof files: currently have %d, trying to add %d"
	msgNotAnImage           = "file %q is not an image (%s)"
	msgProofIndexOutOfRange = "proof index %d out of range (record has %d)"
	msgDuplicateChecklist   = "duplicate checklist item %q"
	msgEmptyChecklistLabel  = "checklist item label must not be empty"
	msgInvalidChecklist     = "invalid checklist status %q for item %q"
	msgNoFilesProvided      = "no files provided"
)

// Resource names used in not-found errors.
const (
	resourceMaintenanceRecord = "maintenance record"
	resourceMasterlist        = "masterlist record"
	resourceIncidentReport    = "incident report"
)
