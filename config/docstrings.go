// auto generated at 2026-10-16T09:12:44Z

package config

var docStrings = map[string]string{
	"logfile":                         "The file to write logs to, when set to an empty string logging will be to the console, when set to 'discard' logging will be disabled",
	"loglevel":                        "The lowest level log to add to the logfile",
	"identity":                        "The identity this machine is known as when the inventory does not supply an id",
	"color":                           "Disables or enable CLI color",
	"plugin.checkmk.updater_path":     "Where the cmk-update-agent binary is downloaded to and executed from",
	"plugin.checkmk.agent_path":       "Where the installed CheckMK agent binary is expected",
	"plugin.checkmk.facts":            "The JSON or YAML file holding node inventory like id and roles",
	"plugin.checkmk.role":             "The inventory role that activates the plugin",
	"plugin.checkmk.download_timeout": "How long a download of the updater may take, 0 disables the timeout",
	"plugin.checkmk.command_timeout":  "How long updater commands may run, 0 disables the timeout",
	"plugin.checkmk.ca_file":          "A CA bundle used to verify the CheckMK site, system roots when unset",
	"plugin.checkmk.insecure":         "Disables TLS verification of the CheckMK site",
	"plugin.checkmk.cipher_suites":    "List of allowed cipher suites when connecting to the CheckMK site, all Go supported suites when empty",
	"plugin.checkmk.ecc_curves":       "List of allowed ECC curves when connecting to the CheckMK site",
	"plugin.checkmk.download_retries": "How often a download that could not connect to the CheckMK site is retried",
	"plugin.checkmk.metrics_textfile": "When set action statistics are written here in the Prometheus text format",
}
