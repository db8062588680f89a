/*
Package observability provides tools for monitoring the onboarding flow.

It turns lifecycle hooks into Prometheus metrics and structured log lines, and
combines several hook sets into one so hosts can wire both at once.
*/
package observability
