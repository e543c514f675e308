// Package schedule contains the ScheduledTask entity: the durable record of a
// pending, time-triggered crop stage advancement, with a kind-discriminated
// typed condition payload. The task scheduler keeps at most one active task
// per crop unit via upsert semantics on the task repository.
package schedule
