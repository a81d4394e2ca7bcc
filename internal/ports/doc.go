// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [ArchiveStore]: Lists, adds, removes and restores archive entries
//   - [ProcessQuery]: Asks the OS whether a named process is running
//   - [PreferencesRepository]: Persists and loads the user's last choices
//   - [EventSink]: Receives status, countdown and list updates for display
//   - [Clock]: Time source, tickers and timers for the orchestrator loop
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement these interfaces
// with concrete implementations (file system, gopsutil, zerolog, etc.).
package ports
