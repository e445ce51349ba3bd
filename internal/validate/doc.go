// Package validate implements the CODEOWNERS validation workflow used by the
// codeowners-check CLI.
//
// It exposes CommandBuilder for wiring the check Cobra command, Service for
// driving the workflow programmatically, and supporting abstractions for the
// manifest parser, patch generator, and filesystem collaborators.
package validate
