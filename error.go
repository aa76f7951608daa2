package btreeslab

import (
	"errors"
)

//goland:noinspection GoUnusedGlobalVariable
var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrArenaFull     = errors.New("arena is at capacity")
	ErrOrderTooSmall = errors.New("tree order must be at least 4")
	ErrInvalidRange  = errors.New("range start is after range end")
	ErrCorruption    = errors.New("tree structure corrupted")
)
