// Package models defines the entities persisted by classkeeper: terms,
// courses, assessments, to-dos and user accounts, plus the enums they use
// and the combined search result.
//
// Every entity carries an Id; zero means the value has not been persisted
// yet, and repositories branch on it to choose between insert and update.
package models
