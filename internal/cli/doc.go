// Package cli wires the cobra command tree for package-health-agent.
package cli
