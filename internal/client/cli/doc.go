// Package cli provides the interactive Nearby Connect command-line client.
//
// It wires configuration, the local session store, the API client, the
// location provider and the radar controller behind a small REPL. Typical
// flow: resume a stored session or sign up / log in, look at the radar,
// select someone nearby and send them a message.
//
// Commands
//
//	help                 show available commands
//	signup               create an account (verification code is shown)
//	verify [id code]     verify a new account and sign in
//	login [email]        sign in with an existing account
//	logout               forget the stored session
//	radar                draw the radar (retries location access if needed)
//	radius <miles>       change the scan radius (0.5 to 5.0)
//	refresh              re-run the nearby search
//	select <n|id>        select a user on the radar
//	send                 message the selected user
//	sendall              message everyone on the radar
//	messages             list received and sent messages
//	profile              show your profile
//	editprofile          change name or phone
//	prefs [a, b, ...]    replace your preferences
//	exit | quit          leave the program
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
