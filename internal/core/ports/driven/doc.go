// Package driven defines the driven ports (secondary interfaces) the
// core depends on: the remote OpenSquare backend and configuration
// storage. Adapters implement these interfaces; services consume them.
package driven
