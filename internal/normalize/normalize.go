// Package normalize maps template capture names onto stable, documented
// field names, so callers get the same vocabulary for a command regardless
// of which platform's template produced the records.
//
// Normalization is opt-in. Default output keeps the names the template
// declares; only callers that ask for canonical fields go through Apply.
package normalize

import (
	"strings"

	"github.com/vk/netcli/internal/command"
	"github.com/vk/netcli/internal/textfsm"
)

// fieldMaps holds per-command-key rename tables. Source names are stored
// upper-cased; lookups fold case so VERSION, Version and version all hit
// the same row.
var fieldMaps = map[string]map[string]string{
	command.ShowVersion: {
		"VERSION":         "software_version",
		"SW_VERSION":      "software_version",
		"HOSTNAME":        "hostname",
		"HOST_NAME":       "hostname",
		"UPTIME":          "uptime",
		"HARDWARE":        "hardware",
		"MODEL":           "hardware",
		"PLATFORM":        "hardware",
		"SERIAL":          "serial_number",
		"SERIAL_NUMBER":   "serial_number",
		"SN":              "serial_number",
		"IMAGE":           "image",
		"BOOT_IMAGE":      "image",
		"RELOAD_REASON":   "reload_reason",
		"CONFIG_REGISTER": "config_register",
	},
	command.ShowInterfacesBrief: {
		"INTERFACE":     "interface",
		"IFACE":         "interface",
		"INTF":          "interface",
		"PORT":          "interface",
		"IP_ADDRESS":    "ip_address",
		"IPADDR":        "ip_address",
		"ADDRESS":       "ip_address",
		"STATUS":        "status",
		"LINK":          "status",
		"LINK_STATUS":   "status",
		"PROTOCOL":      "protocol",
		"PROTO":         "protocol",
		"LINE_PROTOCOL": "protocol",
		"VLAN":          "vlan",
		"MTU":           "mtu",
		"SPEED":         "speed",
		"DUPLEX":        "duplex",
		"DESCRIPTION":   "description",
		"DESCR":         "description",
		"METHOD":        "method",
	},
	command.ShowInventory: {
		"NAME":          "name",
		"DESCR":         "description",
		"DESCRIPTION":   "description",
		"PID":           "product_id",
		"VID":           "version_id",
		"SN":            "serial_number",
		"SERIAL":        "serial_number",
		"SERIAL_NUMBER": "serial_number",
	},
	command.ShowBGPSummary: {
		"NEIGHBOR":          "neighbor",
		"PEER":              "neighbor",
		"PEER_ADDRESS":      "neighbor",
		"REMOTE_AS":         "remote_as",
		"PEER_AS":           "remote_as",
		"LOCAL_AS":          "local_as",
		"ROUTER_ID":         "router_id",
		"MSG_RCVD":          "messages_received",
		"MSGRCVD":           "messages_received",
		"MSG_SENT":          "messages_sent",
		"MSGSENT":           "messages_sent",
		"UP_DOWN":           "up_down",
		"UPDOWN":            "up_down",
		"UPTIME":            "up_down",
		"STATE":             "state",
		"STATE_PFXRCD":      "prefixes_received",
		"PFX_RCD":           "prefixes_received",
		"PFXRCD":            "prefixes_received",
		"PREFIXES_RECEIVED": "prefixes_received",
		"VERSION":           "version",
	},
	command.ShowIPRoute: {
		"PROTOCOL":       "protocol",
		"PROTO":          "protocol",
		"PREFIX":         "prefix",
		"NETWORK":        "prefix",
		"ROUTE":          "prefix",
		"MASK":           "prefix_length",
		"MASKLEN":        "prefix_length",
		"PREFIX_LENGTH":  "prefix_length",
		"NEXT_HOP":       "next_hop",
		"NEXTHOP":        "next_hop",
		"VIA":            "next_hop",
		"INTERFACE":      "interface",
		"IFACE":          "interface",
		"METRIC":         "metric",
		"DISTANCE":       "distance",
		"ADMIN_DISTANCE": "distance",
		"UPTIME":         "age",
		"AGE":            "age",
	},
	command.ShowLLDPNeighbors: {
		"LOCAL_INTERFACE":    "local_interface",
		"LOCAL_INTF":         "local_interface",
		"LOCAL_PORT":         "local_interface",
		"NEIGHBOR":           "neighbor",
		"NEIGHBOR_NAME":      "neighbor",
		"SYSTEM_NAME":        "neighbor",
		"DEVICE_ID":          "neighbor",
		"NEIGHBOR_INTERFACE": "neighbor_interface",
		"NEIGHBOR_PORT":      "neighbor_interface",
		"PORT_ID":            "neighbor_interface",
		"REMOTE_PORT":        "neighbor_interface",
		"CAPABILITIES":       "capabilities",
		"CAPABILITY":         "capabilities",
		"HOLD_TIME":          "hold_time",
		"HOLDTIME":           "hold_time",
	},
}

// Apply renames the fields of every record to the canonical names for the
// given command key. Unmapped names and unknown keys pass through
// unchanged; record and field order are preserved. The input records are
// not modified.
func Apply(key string, records []textfsm.Record) []textfsm.Record {
	fields, ok := fieldMaps[key]
	if !ok {
		return records
	}

	out := make([]textfsm.Record, len(records))
	for i, rec := range records {
		out[i] = rec.Rename(func(name string) string {
			if canonical, ok := fields[strings.ToUpper(name)]; ok {
				return canonical
			}
			return name
		})
	}
	return out
}
