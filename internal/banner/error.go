package banner

import "errors"

var (
	ErrNotFound      = errors.New("banner not found")
	ErrTitleRequired = errors.New("banner title is required")
	ErrImageRequired = errors.New("banner image url is required")
)
