// Package cli implements the interactive command-line front end for the
// users API.
//
// The REPL reads one command per line and dispatches it to App, which
// prompts for any further input (names, emails, passwords) and calls the
// API through client.Client. Passwords are read without echo and wiped
// from memory once they have been sent.
//
// Commands:
//
//	help              show available commands
//	register          create an account
//	login             obtain an access token
//	list              list all users
//	get <id>          show one user
//	rename <id>       change a user's name
//	passwd <id>       change a user's password
//	delete <id>       remove a user
//	logout            forget the access token
//	exit | quit       leave the program
package cli
