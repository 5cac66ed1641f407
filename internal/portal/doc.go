// Package portal implements the parameter side of a testbed profile: typed
// parameter declarations, binding of caller-supplied values, and the
// warning/error report the provisioning portal reads back.
//
// Warnings are advisory and never stop generation. Errors (a value of the
// wrong type, a value outside an enumeration, a missing required value)
// make [Context.VerifyParameters] return a [*VerificationError] and no
// document is produced.
package portal
