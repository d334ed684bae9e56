// Package diagnostic provides structured warnings and errors collected while
// loading NWB schemas, adapting them to LinkML and generating models.
//
// Key capabilities:
//   - Non-fatal findings such as compound dtype fallbacks
//   - Type lookup failures with near-miss suggestions
//   - Logging of collected findings through logrus
package diagnostic
