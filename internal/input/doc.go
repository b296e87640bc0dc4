// Package input reads system documents from disk and turns them into
// types.System values for the diagnostic engine.
//
// A document is YAML or JSON, chosen by file extension (.json is JSON,
// anything else YAML):
//
//	name: Croatia wetlands
//	cycles: 3            # or a list: [{label: "2021"}, {label: "2024"}]
//	elements:
//	  - name: Kopacki Rit
//	    share: 0.25
//	    declared_weight: 0.25
//	    traced: false
//	    characteristic_period: 4
//
// Numeric fields keep their raw text so that an absent declared weight stays
// distinct from "0". Rows with a blank name are dropped, and a document left
// with no elements is rejected with ErrNoElements.
//
// Watch(ctx, path, onChange) re-reads the document whenever it changes on
// disk and hands each valid system to onChange.
package input
