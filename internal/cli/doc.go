// Package cli implements the interactive classkeeper shell.
//
// The App reads commands line by line, prompts for the fields a command
// needs and calls the repositories, search engine and services wired by
// package store. Reminders for saved items go to a notify.Notifier.
//
// Commands that touch schedule data require a signed-in user; register,
// login, help and exit are always available.
package cli
