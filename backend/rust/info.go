package rust

import "fmt"

// AdapterInfo describes the adapter wgpu-native selected.
type AdapterInfo struct {
	Vendor       string
	Architecture string
	Device       string
	Description  string
	BackendType  string
	AdapterType  string
	VendorID     uint32
	DeviceID     uint32
}

// String returns a one-line summary of the adapter.
func (i *AdapterInfo) String() string {
	return fmt.Sprintf("%s (%s, %s/%s, vendor 0x%04X device 0x%04X)",
		i.Device, i.Description, i.BackendType, i.AdapterType, i.VendorID, i.DeviceID)
}
