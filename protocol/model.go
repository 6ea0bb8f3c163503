// Package protocol contains the JSON types used for communication
// between teautil serve and the process driving it.
package protocol

import "github.com/mazrean/teautil/dynamic"

// Cmd is a command that can be issued to a process.
type Cmd string

const (
	CmdParse     Cmd = "parse"     // Parse decodes Text and echoes it back canonicalized
	CmdStringify Cmd = "stringify" // Stringify encodes Fields as a JSON object
	CmdURLEncode Cmd = "urlencode" // URLEncode percent-encodes Text
	CmdForm      Cmd = "form"      // Form serializes Fields as a form string
	CmdClose     Cmd = "close"     // Close terminates the connection
)

// Request is the JSON-encoded message sent to the process over stdin.
// Each request occupies one line; blank lines are ignored.
type Request struct {
	// ID is a unique number per process across all requests.
	// It must be echoed in the Response.
	ID int64

	// Command is the type of request.
	// Only commands that were declared as supported will be processed.
	Command Cmd

	// Text is the input of parse and urlencode.
	Text string `json:",omitempty"`

	// Fields is the input of stringify and form.
	Fields map[string]dynamic.Value `json:",omitempty"`
}

// Response is the JSON response from the process, one per line on stdout.
//
// With the exception of the first protocol message with ID==0
// and KnownCommands populated, these are only sent in response
// to a Request.
//
// Responses can be sent in any order. The ID must match
// the request they're replying to.
type Response struct {
	// ID corresponds to the Request ID they're replying to
	ID int64

	// Err contains the error message if the operation failed
	Err string `json:",omitempty"`

	// KnownCommands is included in the first message on startup (with ID==0).
	// It lists the Request.Command types that are supported.
	KnownCommands []Cmd `json:",omitempty"`

	// Result holds the text produced by stringify, urlencode and form.
	Result string `json:",omitempty"`

	// Value holds the document decoded by parse.
	Value *dynamic.Value `json:",omitempty"`
}
