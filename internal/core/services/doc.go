// Package services implements the core orchestration layer: the
// conversation log, chat orchestrator, upload manager, health monitor
// and document registry. Services depend only on domain types and
// driven ports; all state lives in process memory and is rebuilt from
// the backend on startup.
package services
