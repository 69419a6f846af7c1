package models

// Policy defines which shell commands may run.
// Anything not matched by Shell.Allow is denied.
type Policy struct {
	Shell ShellPolicy
}

// ShellPolicy defines rules for shell commands. Each rule is an argument
// vector prefix: ["pytest"] matches any pytest invocation, ["npm", "test"]
// matches `npm test ...` but not `npm install`.
type ShellPolicy struct {
	Allow [][]string
	Deny  [][]string
}

// DraftRequest asks for the full new content of a file.
type DraftRequest struct {
	Verb        EditVerb
	Path        string
	Instruction string
	Current     string // empty when the file does not exist yet
	Language    string
}
