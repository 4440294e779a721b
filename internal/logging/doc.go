// Package logging builds the zap logger shared by the pipeline stages.
package logging
