// Package tool defines the security-tool catalog and its execution
// allow-list. The catalog is a closed enumeration: names outside it are
// never reported, and only allow-listed names carry a probe command.
package tool

// Descriptor describes one cataloged tool and its current host state.
// Installed is resolved against the executable search path at query time.
type Descriptor struct {
	Name         string   `json:"name"`
	Installed    bool     `json:"installed"`
	Executable   bool     `json:"executable"`
	ProbeCommand []string `json:"probeCommand,omitempty"`
}

// RunResult is the outcome of a probe execution or its rejection.
// OK is true only when the process exited with status zero; a non-zero
// exit still carries Output for its diagnostic value.
type RunResult struct {
	OK      bool   `json:"ok"`
	Tool    string `json:"tool,omitempty"`
	Command string `json:"command,omitempty"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Entry is one catalog row. Probe is the frozen, side-effect-free argv for
// allow-listed tools; nil marks an inventory-only tool that is reported
// but never executed.
type Entry struct {
	Binary string
	Probe  []string
}

type catalogRow struct {
	name  string
	entry Entry
}

// Version/help invocations only. Caller-supplied arguments are never
// appended to these vectors.
var catalog = []catalogRow{
	{"nmap", Entry{Binary: "nmap", Probe: []string{"nmap", "--version"}}},
	{"nikto", Entry{Binary: "nikto", Probe: []string{"nikto", "-Version"}}},
	{"sqlmap", Entry{Binary: "sqlmap", Probe: []string{"sqlmap", "--version"}}},
	{"gobuster", Entry{Binary: "gobuster", Probe: []string{"gobuster", "version"}}},
	{"wpscan", Entry{Binary: "wpscan", Probe: []string{"wpscan", "--version"}}},
	{"metasploit-framework", Entry{Binary: "msfconsole"}},
	{"hydra", Entry{Binary: "hydra"}},
	{"john", Entry{Binary: "john"}},
	{"aircrack-ng", Entry{Binary: "aircrack-ng"}},
}

var catalogIndex = func() map[string]Entry {
	m := make(map[string]Entry, len(catalog))
	for _, row := range catalog {
		m[row.name] = row.entry
	}
	return m
}()

// Names returns the catalog tool names in presentation order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, row := range catalog {
		names[i] = row.name
	}
	return names
}

// Lookup returns the catalog entry for name. Unknown names report false.
func Lookup(name string) (Entry, bool) {
	e, ok := catalogIndex[name]
	return e, ok
}
