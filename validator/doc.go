// Package validator walks arbitrary value trees and reports structural
// shapes that push encoding/json off its serialization fast path.
//
// The validator applies a fixed, ordered set of detector rules at every node
// of the tree, tagging each warning with the dotted/bracketed path to the
// offending node ("root", "root.items[3]", "root.meta.id"). Two additional
// rules fire once per call when a replacer or an indent string is supplied,
// since either forces the slow path regardless of tree content.
//
// Warnings are purely advisory and never abort a traversal. The only error
// conditions are reference cycles and trees deeper than the configured
// limit, both reported as typed errors from the fperrors package.
//
// Basic usage:
//
//	result, err := validator.Validate(tree)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.CanUseFastPath {
//		for _, w := range result.Warnings {
//			fmt.Println(w.String())
//		}
//	}
//
// All traversal state lives in a per-call accumulator, so a single Validator
// may be shared across goroutines.
package validator
