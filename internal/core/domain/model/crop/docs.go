// Package crop contains the CropUnit aggregate and the Stage state machine.
//
// A CropUnit is one tray/batch instance advancing through the fixed stage
// order Soaking? -> Germination -> Blackout? -> Light -> Harvested, where
// optional stages exist only when the unit's recipe gives them a positive
// duration. The aggregate owns the stage-entry timestamps and enforces their
// monotonic ordering; the scheduler and manual overrides both mutate crop
// state exclusively through Advance.
package crop
