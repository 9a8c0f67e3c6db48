package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification.repository: notification not found")
	ErrBuildQuery           = errors.New("notification.repository: failed to build query")
	ErrExecQuery            = errors.New("notification.repository: failed to execute query")
	ErrScanRow              = errors.New("notification.repository: failed to scan row")
)
