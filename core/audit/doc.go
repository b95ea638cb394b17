// Package audit records user activity (logins, searches, uploads) into the
// activity_logs table.
//
// Recording is strictly best-effort: a failed insert is logged through zap
// and never propagated, so auditing can never fail the request it annotates.
package audit
