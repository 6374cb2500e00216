// Package config loads capture case files.
//
// A case file lists regexp captures to check, each with the expectations
// the result must satisfy:
//
//	version: "1"
//	flags: offset_capture|unmatched_as_absent
//	cases:
//	  - name: year and month
//	    pattern: '(?P<year>\d{4})-(?P<month>\d{2})(?:-(?P<day>\d{2}))?'
//	    subject: 2024-05
//	    expect:
//	      year: true
//	      month: ["05", 5]
//	      day: false
//	  - name: day is required
//	    pattern: '(?P<year>\d{4})-(?P<month>\d{2})(?:-(?P<day>\d{2}))?'
//	    subject: 2024-05
//	    negate: true
//	    expect:
//	      day: true
//
// Files are YAML (.yaml, .yml) or JSON (anything else) and are validated
// against an embedded JSON Schema before decoding. Flags may be given as a
// flag list string, a list of names or a bit mask, at file level and per
// case.
package config
