// Package batch models the traceable physical output of a mix order.
//
// A Batch is created in Quarantine and moves through a small state machine:
//
//	Quarantine --release (endAt set)--> Released
//	Released   --quarantine (recall)--> Quarantine
//	Quarantine, Released --reject-----> Rejected (terminal)
//
// Every snapshot re-checks the mass balance
//
//	sum(outputs.qtyKg) <= sum(inputs.actualKg) * 1.05
//
// together with lot uniqueness and the batch/lot number format. Operations never
// mutate the receiver; they return a new Batch or an error.
package batch
