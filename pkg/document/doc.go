// Package document decodes chart description files.
//
// A document is TOML or YAML. It describes one figure and the charts drawn
// on it:
//
//	[figure]
//	width = 600
//	height = 300
//
//	[[series]]
//	label = "revenue"
//	x = [2019, 2020, 2021]
//	y = [1.2, 1.8, 2.4]
//
// Sections are validated when decoded; [Decode] and [Load] never return a
// document that the pipeline would reject.
package document
