// Package instrument wires OpenTelemetry tracing, metrics, and logs, and
// installs the process-wide slog logger.
//
// The installed logger writes JSON to stdout, masks configured field names,
// and stamps every record with the service name and the request correlation
// ID found on the context.
package instrument
