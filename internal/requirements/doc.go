// Package requirements evaluates degree requirements against the set of
// satisfied module codes.
//
// # Catalogue
//
// The catalogue is a list of categories, each holding requirement lines.
// It is loaded once from YAML (embedded by default) and never changes for
// the session:
//
//	categories:
//	  - name: Common Curriculum
//	    required_credits: 40
//	    courses:
//	      - { code: CS1101S, title: Digital Literacy }
//	      - { code: "GEC*", title: Cultures and Connections }
//
// # Matching
//
// A line whose code ends in "*" is satisfied when any satisfied code starts
// with the prefix; one match is enough. Any other line needs the exact code.
// Matching is case-sensitive on normalized (uppercase) codes.
//
// # Fulfilment
//
// FulfilledCount counts satisfied lines in a category. It is a line-item
// ratio for display and is not weighted by RequiredCredits.
package requirements
