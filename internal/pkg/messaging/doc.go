// Package messaging publishes and consumes events without tying business
// code to a broker.
//
// Drivers exist for NATS, Kafka, NSQ, Google Pub/Sub, and an in-process
// memory broker for local runs and tests. Handlers return nil to acknowledge
// a delivery; a non-nil error asks the broker to redeliver where it can.
package messaging
