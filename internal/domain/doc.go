// Package domain contains the core domain entities and value objects for savekeeper.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (file system, process table, logging)
// and contains only plain values and business rules.
//
// # Entities
//
//   - [EntryInfo]: An immutable snapshot of a save file, identified by filename
//   - [LivenessState]: Whether the external application is running
//   - [ScheduleState]: Autosave interval, next fire time and enabled flag
//   - [StatusRecord]: The single user-facing status line
//   - [RetentionPolicy]: Age threshold for pruning auto-named archive entries
//
// # Errors
//
// Sentinel errors classify failures; [CategoryOf] maps any error onto the
// [Category] taxonomy used by the status controller to resolve errors.
package domain
