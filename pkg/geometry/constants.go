package geometry

// BinCount is the number of SAH bins sampled per axis when searching for
// the best split plane during BVH construction.
const BinCount = 8

// EpsilonParallel rejects ray/triangle intersections where the ray is
// (near-)parallel to the triangle plane.
const EpsilonParallel = 1e-5

// EpsilonT rejects ray/triangle hits too close to the origin to be
// meaningful, avoiding self-intersection artifacts.
const EpsilonT = 1e-4

// maxStackDepth bounds the explicit traversal stack. A balanced binned-SAH
// tree over any realistic triangle count never approaches this depth; it
// exists so traversal never needs the call stack.
const maxStackDepth = 64
