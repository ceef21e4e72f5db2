// Package services holds the application services built on the repositories:
// account creation and credential checks, the local sign-in session, the
// app-lock PIN and the summary report.
package services
