// Package types defines the input and output model of the portfolio
// diagnostic: the System snapshot handed to the engine and the Report it
// returns. These are plain values with no behaviour beyond classification
// helpers, shared by the engine, the input loader, the exporter and the CLI.
//
// Numeric input fields are carried as Quantity (raw text) so the engine can
// tell an absent declared weight or characteristic period apart from an
// explicit zero. Quantity.Float treats unparseable text as 0.
//
// Status is a closed four-value enumeration; per-rule extras are modelled as
// a sealed Payload interface with one concrete type per TestID.
package types
