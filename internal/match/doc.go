// Package match provides identifier case conversion and fuzzy name matching.
//
// Key functions:
//   - CamelToSnake: derives slot names from type names
//   - CamelCase: derives model class names from LinkML class names
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known type names close to an unresolved one
package match
