// Package alerts evaluates configured threshold rules against each
// athlete's freshly computed risk evaluation and delivers webhook
// notifications (slack | teams | http) when rules fire or resolve.
// Re-fires are suppressed per rule+athlete for the rule's cooldown.
package alerts
