// Package procon implements a device.Device backend driving the HD
// rumble actuators of a Nintendo Switch Pro Controller over USB.
//
// The controller is discovered by vendor/product ID through gousb and
// its hidraw node resolved through sysfs. Rendered frames are encoded as
// output report 0x02 with a log-scaled frequency/amplitude rumble sample
// mirrored across both actuators.
//
// Opening the backend requires read/write access to the hidraw node;
// typically root or a udev rule granting the node to the user.
package procon
