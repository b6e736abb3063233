// Package mail defines the contract for sending email messages and an SMTP
// implementation of it.
//
// Callers work with the Mail interface and the Message payload. Transport
// failures are reported as *Error values whose Kind tells authentication
// problems, rejected recipients, dropped connections and protocol errors
// apart without parsing server replies.
package mail
