package testrunner

import "errors"

var (
	ErrNoTestCommand = errors.New("no test command configured")
	ErrEmptyCommand  = errors.New("test command is empty")
)
