package accel

// maxStackDepth bounds the explicit TLAS traversal stack, mirroring the
// bound used for BVH traversal in package geometry.
const maxStackDepth = 64
