package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchDeviceType(t *testing.T) {
	tests := []struct {
		name   string
		banner string
		want   string
	}{
		{"cisco ios xr", "Cisco IOS-XR Software, Version 7.5.2", "cisco_ios_xr"},
		{"cisco ios xe wins over bare cisco", "Cisco IOS-XE Software, Version 17.09", "cisco_ios"},
		{"plain cisco ios", "User Access Verification\r\nCisco IOS Software", "cisco_ios"},
		{"nxos", "Cisco Nexus Operating System (NX-OS) Software", "cisco_nxos"},
		{"asa", "Cisco Adaptive Security Appliance (ASA) Software", "cisco_asa"},
		{"junos", "JUNOS 21.4R1.12 built by builder", "juniper_junos"},
		{"juniper srx without junos token", "Juniper Networks SRX Series Gateway", "juniper_srx"},
		{"arista", "Arista EOS 4.28.1F console", "arista_eos"},
		{"paloalto panos", "Welcome to PAN-OS CLI", "paloalto_panos"},
		{"fortios", "FortiGate-100F login banner", "fortinet_fortios"},
		{"huawei vrp", "Huawei Versatile Routing Platform Software", "huawei_vrp"},
		{"linux generic", "Ubuntu 22.04.3 LTS", "linux"},
		{"hp procurve", "HP ProCurve Switch 2920", "hp_procurve"},
		{"aruba arubaos wins over bare aruba aoscx", "Aruba ArubaOS Switch 5406", "aruba_os"},
		{"aruba aoscx fallback", "Aruba CX 6300 Switch", "aruba_aoscx"},
		{"ubiquiti edgerouter", "Ubiquiti EdgeRouter EdgeOS login", "ubiquiti_edgerouter"},
		{"ubiquiti unifi", "UBNT UniFi Switch console", "ubiquiti_unifi"},
		{"ubiquiti edgeswitch fallback", "UBNT EdgeSwitch 24-port", "ubiquiti_edgeswitch"},
		{"mikrotik switchos", "MikroTik SwitchOS build", "mikrotik_switchos"},
		{"mikrotik routeros", "MikroTik RouterOS 7.11 login", "mikrotik_routeros"},
		{"extreme exos", "ExtremeXOS Switch - Summit X460", "extreme_exos"},
		{"dell os10", "Dell EMC Networking OS10 Enterprise", "dell_os10"},
		{"versa flexvnf", "Versa FlexVNF boot shell", "versa_flexvnf"},
		{"no match", "Welcome to some unrecognized box", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchDeviceType(tt.banner))
		})
	}
}
