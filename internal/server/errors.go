package server

import "errors"

// Server-specific errors
var (
	ErrServerClosed         = errors.New("server is closed")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrQueueFull            = errors.New("command queue is full")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrInvalidCommand       = errors.New("invalid command")
	ErrArenaNotSealed       = errors.New("arena is not sealed")
)
