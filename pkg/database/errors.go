package database

import "errors"

// ErrNotReady is returned while no startup ping has succeeded.
var ErrNotReady = errors.New("database not ready")
