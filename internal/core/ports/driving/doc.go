// Package driving defines the driving ports (primary interfaces) for fynda.
// These interfaces are consumed by the CLI, TUI, and MCP adapters.
package driving
