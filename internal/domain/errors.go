package domain

import "errors"

// Domain errors.
var (
	ErrTaskSpecNotFound   = errors.New("taskspec file not found")
	ErrLabelMapNotFound   = errors.New("label map file not found")
	ErrInvalidLabelMap    = errors.New("label map validation failed")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrEmptyTargetPath    = errors.New("target path cannot be empty")
	ErrEmptyTemplateName  = errors.New("template name cannot be empty")
	ErrDescriptorNoClose  = errors.New("descriptor has no closing marker")
	ErrRegistrationFailed = errors.New("build unit registration failed")
	ErrNotGitRepository   = errors.New("not a git repository (or any of the parent directories)")
	ErrMissingCredentials = errors.New("relay credentials not configured")
	ErrMissingDispatch    = errors.New("dispatch endpoint not configured")
)
