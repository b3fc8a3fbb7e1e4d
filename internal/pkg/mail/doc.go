// Package mail sends plain-text email. Callers depend on the Mail interface;
// SMTP is the only transport.
package mail
