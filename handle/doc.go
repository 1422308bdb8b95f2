// Package handle implements the opaque handle table behind the bridge
// surface.
//
// Handles are small integers mapping to engine, pattern and player
// values. The table reports nothing beyond live or dead: a freed handle
// fails Get and Free until its slot is reused. One release per created
// handle; the caller owns lifecycle correctness.
package handle
