package voxgo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller misuse such as a destination level that
	// is not coarser than the source level.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrLevelOutOfRange is returned for a LOD outside [0, NumLevels).
	ErrLevelOutOfRange = errors.New("level out of range")
)

// LevelOutOfRangeError indicates a LOD index the pyramid does not have.
//
// It matches ErrLevelOutOfRange with errors.Is.
type LevelOutOfRangeError struct {
	LOD       uint8
	NumLevels int
}

func (e *LevelOutOfRangeError) Error() string {
	return fmt.Sprintf("level %d out of range: pyramid has %d levels", e.LOD, e.NumLevels)
}

func (e *LevelOutOfRangeError) Unwrap() error { return ErrLevelOutOfRange }

// InvalidLevelOrderError indicates a downsample whose destination is not
// coarser than its source.
//
// It matches ErrInvalidArgument with errors.Is.
type InvalidLevelOrderError struct {
	SrcLOD uint8
	DstLOD uint8
}

func (e *InvalidLevelOrderError) Error() string {
	return fmt.Sprintf("destination level %d must be greater than source level %d", e.DstLOD, e.SrcLOD)
}

func (e *InvalidLevelOrderError) Unwrap() error { return ErrInvalidArgument }
