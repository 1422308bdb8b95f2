// Package device defines the output backend boundary of the haptics
// engine and provides a simulated in-memory implementation.
//
// The engine renders patterns into fixed-interval Frames and hands them
// to a Device. Backends translate frames into whatever their hardware
// understands; the Sim backend records them for inspection, and
// device/procon drives a USB game controller's rumble actuators.
package device
