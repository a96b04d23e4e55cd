// Package easing smooths the rendered motion of entities whose authoritative
// Transform only changes on a fixed simulation step.
//
// Every fixed step opens a window: translation, rotation and scale are captured when
// the window opens and again when it closes (or the closing value is predicted from a
// velocity when extrapolating). Once per rendered frame the two snapshots are blended
// by the overstep fraction of the fixed clock and written to a DisplayTransform, which
// renderers read instead of the Transform. The Transform itself is never touched.
//
// Writes to a Transform outside a window, such as a teleport from gameplay code in
// Update, are detected and make the affected channel pass the new value straight
// through until the next window is captured.
//
// Plugin wires the phases into an ecs.Scheduler. Controller exposes the same phases
// per entity for hosts that run their own loop.
package easing
