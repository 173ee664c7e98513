package accel

import "errors"

// ErrInvalidHandle is returned when a BvhHandle or InstanceID does not
// refer to a currently registered mesh BVH or scene instance.
var ErrInvalidHandle = errors.New("accel: handle does not refer to a live entry")

// ErrDegenerateDirection is returned when a ray's direction has zero
// length, making the dir_scale instance-space correction undefined.
var ErrDegenerateDirection = errors.New("accel: ray direction has zero length")
