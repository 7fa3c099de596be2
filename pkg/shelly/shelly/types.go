package shelly

type Product struct {
	Model       string `json:"model"`
	Serial      string `json:"serial,omitempty"`
	MacAddress  string `json:"mac"`
	Application string `json:"app"`
	Version     string `json:"ver"`
	Generation  int    `json:"gen"`
}

// From https://shelly-api-docs.shelly.cloud/gen2/ComponentsAndServices/Shelly#shellygetdeviceinfo
type DeviceInfo struct {
	Product
	Name                  *string `json:"name,omitempty"`
	Id                    string  `json:"id"`
	FirmwareId            string  `json:"fw_id"`
	Profile               string  `json:"profile,omitempty"`
	AuthenticationEnabled bool    `json:"auth_en"`
	AuthenticationDomain  string  `json:"auth_domain,omitempty"`
	Discoverable          bool    `json:"discoverable,omitempty"`
	Matter                bool    `json:"matter,omitempty"`
}
