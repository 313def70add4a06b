// Package failure defines the error taxonomy shared by the resize pipeline.
//
// Every fatal or per-file failure is tagged with one of the exported sentinel
// markers so the command layer can pick a localized message and an exit code
// with errors.Is, without parsing error strings. The subject carried by
// *Error (a path or a raw argument) is what the localized line shows the user.
package failure
