// Package driving defines the driving ports (primary interfaces)
// through which external actors — the CLI and the TUI — operate the
// core services.
package driving
