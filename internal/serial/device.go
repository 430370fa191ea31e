package serial

// Device is a device that can be attached to the Controller. Send
// returns the next bit shifted out of the device, Receive shifts in
// the bit sent by the Controller.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is the same as if no cable is
// plugged in, as the line is pulled high.
type nullDevice struct{}

// Receive does nothing.
func (n nullDevice) Receive(bool) {}

// Send always returns true.
func (n nullDevice) Send() bool { return true }
