package dispatch

import (
	"context"
	"strings"

	"github.com/sh1/netsession/internal/session"
)

// detectRule is one entry in the fixed-priority substring table §4.10 walks
// in order; the first rule whose substrings all match wins.
type detectRule struct {
	tag        string
	substrings []string
}

// detectRules is evaluated top to bottom; earlier rules take priority over
// later, more general ones (e.g. a concrete cisco_ios_xr match before the
// generic cisco/ios fallback rules).
var detectRules = []detectRule{
	{"cisco_ios_xr", []string{"ios-xr"}},
	{"cisco_ios", []string{"ios-xe"}},
	{"cisco_sg300", []string{"sg300"}},
	{"cisco_nxos", []string{"nx-os"}},
	{"cisco_nxos", []string{"nexus"}},
	{"cisco_asa", []string{"asa"}},
	{"cisco_ios", []string{"cisco"}},
	{"cisco_ios", []string{"ios"}},
	{"juniper_junos", []string{"junos"}},
	{"juniper_srx", []string{"juniper", "srx"}},
	{"ciena_saos", []string{"ciena"}},
	{"ciena_saos", []string{"saos"}},
	{"fortinet_fortios", []string{"fortinet"}},
	{"fortinet_fortios", []string{"fortios"}},
	{"fortinet_fortios", []string{"fortigate"}},
	{"paloalto_panos", []string{"palo alto"}},
	{"paloalto_panos", []string{"pan-os"}},
	{"ericsson_ipos", []string{"ericsson"}},
	{"ericsson_ipos", []string{"ipos"}},
	{"ericsson_mltn", []string{"minilink"}},
	{"linux", []string{"linux"}},
	{"linux", []string{"ubuntu"}},
	{"linux", []string{"centos"}},
	{"linux", []string{"redhat"}},
	{"linux", []string{"debian"}},
	{"linux", []string{"bash"}},
	{"huawei_vrp", []string{"huawei"}},
	{"huawei_vrp", []string{"vrp"}},
	{"huawei_vrp", []string{"ne8000"}},
	{"arista_eos", []string{"arista"}},
	{"hp_procurve", []string{"procurve"}},
	{"aruba_os", []string{"aruba", "arubaos"}},
	{"aruba_os", []string{"aruba", "mobility controller"}},
	{"aruba_aoscx", []string{"aruba"}},
	{"ubiquiti_edgerouter", []string{"ubiquiti", "edgerouter"}},
	{"ubiquiti_edgerouter", []string{"ubnt", "edgerouter"}},
	{"ubiquiti_edgerouter", []string{"ubiquiti", "edgeos"}},
	{"ubiquiti_edgerouter", []string{"ubnt", "edgeos"}},
	{"ubiquiti_edgeswitch", []string{"ubiquiti", "edgeswitch"}},
	{"ubiquiti_edgeswitch", []string{"ubnt", "edgeswitch"}},
	{"ubiquiti_unifi", []string{"ubiquiti", "unifi"}},
	{"ubiquiti_unifi", []string{"ubnt", "unifi"}},
	{"ubiquiti_edgeswitch", []string{"ubiquiti"}},
	{"ubiquiti_edgeswitch", []string{"ubnt"}},
	{"mikrotik_switchos", []string{"mikrotik", "switchos"}},
	{"mikrotik_switchos", []string{"routeros", "switchos"}},
	{"mikrotik_routeros", []string{"mikrotik"}},
	{"mikrotik_routeros", []string{"routeros"}},
	{"extreme_exos", []string{"extremexos"}},
	{"extreme_exos", []string{"exos"}},
	{"dell_os10", []string{"dell", "os10"}},
	{"versa_flexvnf", []string{"versa"}},
	{"versa_flexvnf", []string{"flexvnf"}},
}

// AutoDetect opens a Generic Session against creds, provokes the device's
// banner/prompt with an empty command, and matches the lower-cased output
// against the fixed-priority substring table. It returns "" if nothing
// matches. The probe session is always closed.
func AutoDetect(ctx context.Context, creds session.Credentials, opts session.AdvancedOptions) (string, error) {
	probeCreds := creds
	probeCreds.DeviceType = "generic"

	d := New()
	sess, err := d.Build(probeCreds, opts)
	if err != nil {
		return "", err
	}
	defer sess.Disconnect(ctx)
	if err := connectAndPrepare(ctx, sess, opts); err != nil {
		return "", err
	}

	result, err := sess.SendCommand(ctx, "")
	if err != nil && result.Output == "" {
		return "", err
	}

	return matchDeviceType(result.Output), nil
}

// matchDeviceType lower-cases banner and walks detectRules in priority
// order, returning the first tag whose substrings all match, or "" if none
// do.
func matchDeviceType(banner string) string {
	lower := strings.ToLower(banner)
	for _, rule := range detectRules {
		matched := true
		for _, sub := range rule.substrings {
			if !strings.Contains(lower, sub) {
				matched = false
				break
			}
		}
		if matched {
			return rule.tag
		}
	}
	return ""
}
